package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tatamelab/tatame/internal/models"
)

type ClassAttendanceRow struct {
	ClassName string
	Checkins  int
}

// BuildFinancialWorkbook: aba "Mensalidades" com a situação de cada aluno no
// mês e aba "Presenças" com o total de check-ins por turma.
func BuildFinancialWorkbook(payments []models.Payment, classes []ClassAttendanceRow, refMonth time.Time, now time.Time) (*excelize.File, error) {
	payRows := make([][]string, 0, len(payments))
	for _, p := range payments {
		due := "-"
		if p.DueDay != nil {
			due = fmt.Sprintf("dia %02d", *p.DueDay)
		}
		status := "em aberto"
		if p.PaidAt != nil {
			status = "pago em " + p.PaidAt.In(now.Location()).Format("02/01/2006")
		} else if p.DueDay != nil && sameMonth(refMonth, now) && now.Day() > *p.DueDay {
			status = "atrasado"
		}
		payRows = append(payRows, []string{
			p.StudentName,
			formatCents(p.AmountCents),
			due,
			status,
		})
	}

	classRows := make([][]string, 0, len(classes))
	for _, c := range classes {
		classRows = append(classRows, []string{c.ClassName, fmt.Sprintf("%d", c.Checkins)})
	}

	return NewWorkbook([]SheetSpec{
		{
			Title:  "Mensalidades",
			Header: []string{"Aluno", "Valor", "Vencimento", "Situação"},
			Rows:   payRows,
		},
		{
			Title:  "Presenças",
			Header: []string{"Turma", "Check-ins no mês"},
			Rows:   classRows,
		},
	})
}

func FinancialReportFilename(refMonth time.Time) string {
	return fmt.Sprintf("Financeiro %s.xlsx", refMonth.Format("2006-01"))
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	whole := cents / 100
	frac := cents % 100
	// formato brasileiro: R$ 1.234,56
	s := fmt.Sprintf("%d", whole)
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return fmt.Sprintf("R$ %s%s,%02d", sign, strings.Join(parts, "."), frac)
}
