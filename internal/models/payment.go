package models

import "time"

type Payment struct {
	ID          int64      `db:"id"`
	StudentID   int64      `db:"student_id"`
	RefMonth    time.Time  `db:"ref_month"` // primeiro dia do mês de referência
	AmountCents int64      `db:"amount_cents"`
	PaidAt      *time.Time `db:"paid_at"`
	CreatedAt   time.Time  `db:"created_at"`

	StudentName string `db:"student_name"`
	DueDay      *int   `db:"due_day"`
}
