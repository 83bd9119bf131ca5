package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/tatamelab/tatame/internal/models"
)

func UpsertPayment(ctx context.Context, database *sql.DB, p models.Payment) (int64, error) {
	var id int64
	err := database.QueryRowContext(ctx, `
		INSERT INTO payments (student_id, ref_month, amount_cents, paid_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (student_id, ref_month) DO UPDATE SET
			amount_cents = excluded.amount_cents,
			paid_at = COALESCE(payments.paid_at, excluded.paid_at)
		RETURNING id
	`, p.StudentID, p.RefMonth.Format("2006-01-02"), p.AmountCents, p.PaidAt).Scan(&id)
	return id, err
}

func MarkPaymentPaid(ctx context.Context, database *sql.DB, id int64, when time.Time) error {
	_, err := database.ExecContext(ctx, `
		UPDATE payments SET paid_at = $2 WHERE id = $1 AND paid_at IS NULL
	`, id, when)
	return err
}

// ListPaymentsByMonth traz o quadro do mês com nome e dia de vencimento,
// a linha crua do relatório financeiro.
func ListPaymentsByMonth(ctx context.Context, database *sql.DB, refMonth time.Time) ([]models.Payment, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT p.id, p.student_id, p.ref_month, p.amount_cents, p.paid_at, p.created_at,
		       s.name, s.payment_due_day
		FROM payments p
		JOIN students s ON s.id = p.student_id
		WHERE p.ref_month = $1
		ORDER BY s.name
	`, refMonth.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.StudentID, &p.RefMonth, &p.AmountCents, &p.PaidAt, &p.CreatedAt, &p.StudentName, &p.DueDay); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListOverduePayments: não pagos cujo dia de vencimento já passou no mês
// de referência corrente.
func ListOverduePayments(ctx context.Context, database *sql.DB, now time.Time) ([]models.Payment, error) {
	refMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	rows, err := database.QueryContext(ctx, `
		SELECT p.id, p.student_id, p.ref_month, p.amount_cents, p.paid_at, p.created_at,
		       s.name, s.payment_due_day
		FROM payments p
		JOIN students s ON s.id = p.student_id
		WHERE p.ref_month = $1
		  AND p.paid_at IS NULL
		  AND s.payment_due_day IS NOT NULL
		  AND s.payment_due_day < $2
		ORDER BY s.name
	`, refMonth.Format("2006-01-02"), now.Day())
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.StudentID, &p.RefMonth, &p.AmountCents, &p.PaidAt, &p.CreatedAt, &p.StudentName, &p.DueDay); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
