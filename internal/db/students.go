package db

import (
	"context"
	"database/sql"

	"github.com/tatamelab/tatame/internal/models"
)

func CreateStudent(ctx context.Context, database *sql.DB, s models.Student) (int64, error) {
	var id int64
	err := database.QueryRowContext(ctx, `
		INSERT INTO students (name, belt, weekly_goal, payment_due_day)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, s.Name, s.Belt, s.WeeklyGoal, s.PaymentDueDay).Scan(&id)
	return id, err
}

func GetStudentByID(ctx context.Context, database *sql.DB, id int64) (*models.Student, error) {
	row := database.QueryRowContext(ctx, `
		SELECT id, name, belt, weekly_goal, payment_due_day, is_active, created_at, deactivated_at
		FROM students WHERE id = $1
	`, id)
	var s models.Student
	if err := row.Scan(&s.ID, &s.Name, &s.Belt, &s.WeeklyGoal, &s.PaymentDueDay, &s.IsActive, &s.CreatedAt, &s.DeactivatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func ListStudents(ctx context.Context, database *sql.DB, onlyActive bool) ([]models.Student, error) {
	q := `
		SELECT id, name, belt, weekly_goal, payment_due_day, is_active, created_at, deactivated_at
		FROM students`
	if onlyActive {
		q += ` WHERE is_active`
	}
	q += ` ORDER BY name`

	rows, err := database.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Student
	for rows.Next() {
		var s models.Student
		if err := rows.Scan(&s.ID, &s.Name, &s.Belt, &s.WeeklyGoal, &s.PaymentDueDay, &s.IsActive, &s.CreatedAt, &s.DeactivatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func UpdateStudent(ctx context.Context, database *sql.DB, s models.Student) error {
	_, err := database.ExecContext(ctx, `
		UPDATE students
		SET name = $2, belt = $3, weekly_goal = $4, payment_due_day = $5
		WHERE id = $1
	`, s.ID, s.Name, s.Belt, s.WeeklyGoal, s.PaymentDueDay)
	return err
}

// DeactivateStudent: o cliente nunca apaga alunos; desativação é o
// equivalente administrativo, e a exclusão em cascata fica no banco.
func DeactivateStudent(ctx context.Context, database *sql.DB, id int64) error {
	_, err := database.ExecContext(ctx, `
		UPDATE students SET is_active = FALSE, deactivated_at = now() WHERE id = $1
	`, id)
	return err
}
