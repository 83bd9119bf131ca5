package models

import "time"

type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

type Student struct {
	ID            int64      `db:"id"`
	Name          string     `db:"name"`
	Belt          string     `db:"belt"`
	WeeklyGoal    int        `db:"weekly_goal"`     // 1..7
	PaymentDueDay *int       `db:"payment_due_day"` // 1..31, nil = sem cobrança
	IsActive      bool       `db:"is_active"`
	CreatedAt     time.Time  `db:"created_at"`
	DeactivatedAt *time.Time `db:"deactivated_at"`
}

type Instructor struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Belt      string    `db:"belt"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
}
