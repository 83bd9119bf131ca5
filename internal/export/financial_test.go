package export

import (
	"testing"
	"time"

	"github.com/tatamelab/tatame/internal/models"
)

func TestBuildFinancialWorkbook(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	refMonth := time.Date(2025, 6, 1, 0, 0, 0, 0, loc)
	now := time.Date(2025, 6, 20, 12, 0, 0, 0, loc)

	due10 := 10
	due25 := 25
	paid := time.Date(2025, 6, 5, 9, 0, 0, 0, loc)
	payments := []models.Payment{
		{StudentName: "Ana", AmountCents: 15000, DueDay: &due10, PaidAt: &paid},
		{StudentName: "Bruno", AmountCents: 15000, DueDay: &due10}, // venceu dia 10, hoje é 20
		{StudentName: "Carla", AmountCents: 15000, DueDay: &due25}, // ainda no prazo
	}
	classes := []ClassAttendanceRow{{ClassName: "Adulto Gi", Checkins: 42}}

	f, err := BuildFinancialWorkbook(payments, classes, refMonth, now)
	if err != nil {
		t.Fatal(err)
	}

	get := func(cell string) string {
		v, err := f.GetCellValue("Mensalidades", cell)
		if err != nil {
			t.Fatal(err)
		}
		return v
	}
	if got := get("A2"); got != "Ana" {
		t.Fatalf("A2: %q", got)
	}
	if got := get("B2"); got != "R$ 150,00" {
		t.Fatalf("valor formatado errado: %q", got)
	}
	if got := get("D2"); got != "pago em 05/06/2025" {
		t.Fatalf("situação de Ana: %q", got)
	}
	if got := get("D3"); got != "atrasado" {
		t.Fatalf("Bruno venceu dia 10: %q", got)
	}
	if got := get("D4"); got != "em aberto" {
		t.Fatalf("Carla ainda no prazo: %q", got)
	}

	v, err := f.GetCellValue("Presenças", "B2")
	if err != nil {
		t.Fatal(err)
	}
	if v != "42" {
		t.Fatalf("check-ins da turma: %q", v)
	}
}

func TestFormatCents_Grouping(t *testing.T) {
	if s := formatCents(123456789); s != "R$ 1.234.567,89" {
		t.Fatalf("agrupamento: %q", s)
	}
	if s := formatCents(900); s != "R$ 9,00" {
		t.Fatalf("%q", s)
	}
	// estornos: o sinal não pode sumir nem para valores abaixo de um real
	if s := formatCents(-50); s != "R$ -0,50" {
		t.Fatalf("negativo pequeno: %q", s)
	}
	if s := formatCents(-123456); s != "R$ -1.234,56" {
		t.Fatalf("negativo agrupado: %q", s)
	}
}

func TestFinancialReportFilename(t *testing.T) {
	ref := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if name := FinancialReportFilename(ref); name != "Financeiro 2025-06.xlsx" {
		t.Fatalf("%q", name)
	}
}
