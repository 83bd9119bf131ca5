package api

import (
	"bytes"
	"database/sql"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tatamelab/tatame/internal/ctxutil"
	"github.com/tatamelab/tatame/internal/db"
	"github.com/tatamelab/tatame/internal/export"
	"github.com/tatamelab/tatame/internal/models"
)

type ReportHandler struct {
	DB  *sql.DB
	Loc *time.Location
}

// Financial: planilha do mês (?month=YYYY-MM, padrão mês corrente).
func (h *ReportHandler) Financial(c echo.Context) error {
	now := time.Now().In(h.Loc)
	refMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, h.Loc)
	if s := c.QueryParam("month"); s != "" {
		parsed, err := time.ParseInLocation("2006-01", s, h.Loc)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "month inválido (use YYYY-MM)")
		}
		refMonth = parsed
	}
	monthEnd := refMonth.AddDate(0, 1, 0)

	ctx, cancel := ctxutil.WithDBTimeout(c.Request().Context())
	defer cancel()

	payments, err := db.ListPaymentsByMonth(ctx, h.DB, refMonth)
	if err != nil {
		return err
	}
	totals, err := db.CountAttendanceByClass(ctx, h.DB, refMonth, monthEnd)
	if err != nil {
		return err
	}
	classes, err := db.ListClasses(ctx, h.DB)
	if err != nil {
		return err
	}
	rows := make([]export.ClassAttendanceRow, 0, len(classes))
	for _, cl := range classes {
		rows = append(rows, export.ClassAttendanceRow{ClassName: cl.Name, Checkins: totals[cl.ID]})
	}

	wb, err := export.BuildFinancialWorkbook(payments, rows, refMonth, now)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		return err
	}

	filename := export.FinancialReportFilename(refMonth)
	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename*=UTF-8''`+url.PathEscape(filename))
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

type paymentPayload struct {
	StudentID   int64  `json:"student_id"`
	Month       string `json:"month"` // YYYY-MM
	AmountCents int64  `json:"amount_cents"`
}

func (h *ReportHandler) UpsertPayment(c echo.Context) error {
	var req paymentPayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	refMonth, err := time.ParseInLocation("2006-01", req.Month, h.Loc)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "month inválido (use YYYY-MM)")
	}
	if req.StudentID == 0 || req.AmountCents <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "student_id e amount_cents são obrigatórios")
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Request().Context())
	defer cancel()

	id, err := db.UpsertPayment(ctx, h.DB, models.Payment{
		StudentID:   req.StudentID,
		RefMonth:    refMonth,
		AmountCents: req.AmountCents,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]any{"id": id})
}

func (h *ReportHandler) MarkPaid(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Request().Context())
	defer cancel()

	if err := db.MarkPaymentPaid(ctx, h.DB, id, time.Now().In(h.Loc)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
