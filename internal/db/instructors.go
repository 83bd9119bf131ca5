package db

import (
	"context"
	"database/sql"

	"github.com/tatamelab/tatame/internal/models"
)

func CreateInstructor(ctx context.Context, database *sql.DB, in models.Instructor) (int64, error) {
	var id int64
	err := database.QueryRowContext(ctx, `
		INSERT INTO instructors (name, belt)
		VALUES ($1, $2)
		RETURNING id
	`, in.Name, in.Belt).Scan(&id)
	return id, err
}

func ListInstructors(ctx context.Context, database *sql.DB) ([]models.Instructor, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT id, name, belt, is_active, created_at
		FROM instructors
		WHERE is_active
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Instructor
	for rows.Next() {
		var in models.Instructor
		if err := rows.Scan(&in.ID, &in.Name, &in.Belt, &in.IsActive, &in.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}
