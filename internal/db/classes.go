package db

import (
	"context"
	"database/sql"

	"github.com/tatamelab/tatame/internal/models"
)

func CreateClass(ctx context.Context, database *sql.DB, c models.ClassOffering) (int64, error) {
	var id int64
	err := database.QueryRowContext(ctx, `
		INSERT INTO classes (name, schedule, is_free, capacity, instructor_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, c.Name, c.Schedule, c.IsFree, c.Capacity, c.InstructorID).Scan(&id)
	return id, err
}

func GetClassByID(ctx context.Context, database *sql.DB, id int64) (*models.ClassOffering, error) {
	row := database.QueryRowContext(ctx, `
		SELECT id, name, schedule, is_free, capacity, instructor_id
		FROM classes WHERE id = $1
	`, id)
	var c models.ClassOffering
	if err := row.Scan(&c.ID, &c.Name, &c.Schedule, &c.IsFree, &c.Capacity, &c.InstructorID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func ListClasses(ctx context.Context, database *sql.DB) ([]models.ClassOffering, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT id, name, schedule, is_free, capacity, instructor_id
		FROM classes ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.ClassOffering
	for rows.Next() {
		var c models.ClassOffering
		if err := rows.Scan(&c.ID, &c.Name, &c.Schedule, &c.IsFree, &c.Capacity, &c.InstructorID); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func UpdateClass(ctx context.Context, database *sql.DB, c models.ClassOffering) error {
	_, err := database.ExecContext(ctx, `
		UPDATE classes
		SET name = $2, schedule = $3, is_free = $4, capacity = $5, instructor_id = $6
		WHERE id = $1
	`, c.ID, c.Name, c.Schedule, c.IsFree, c.Capacity, c.InstructorID)
	return err
}
