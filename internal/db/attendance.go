package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/tatamelab/tatame/internal/models"
)

// InsertAttendance grava o check-in do dia. O índice único
// (student_id, class_id, checked_on) garante no máximo um por dia;
// violação retorna ErrDuplicateDay, que o chamador apresenta como
// "você já fez check-in hoje".
func InsertAttendance(ctx context.Context, database *sql.DB, rec models.AttendanceRecord, day time.Time) (int64, error) {
	var id int64
	err := database.QueryRowContext(ctx, `
		INSERT INTO attendance (student_id, class_id, subclass_id, checked_at, checked_on)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, rec.StudentID, rec.ClassID, rec.SubclassID, rec.CheckedAt, day.Format("2006-01-02")).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateDay
		}
		return 0, err
	}
	return id, nil
}

func ListAttendanceByStudent(ctx context.Context, database *sql.DB, studentID int64, since time.Time) ([]models.AttendanceRecord, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT id, student_id, class_id, subclass_id, checked_at
		FROM attendance
		WHERE student_id = $1 AND checked_at >= $2
		ORDER BY checked_at
	`, studentID, since)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanAttendance(rows)
}

func ListAttendanceSince(ctx context.Context, database *sql.DB, since time.Time) ([]models.AttendanceRecord, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT id, student_id, class_id, subclass_id, checked_at
		FROM attendance
		WHERE checked_at >= $1
		ORDER BY checked_at
	`, since)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanAttendance(rows)
}

// ListAttendanceBetween limita pelos dois lados; o job de ranking usa o
// intervalo fechado-aberto [from, to) da semana encerrada.
func ListAttendanceBetween(ctx context.Context, database *sql.DB, from, to time.Time) ([]models.AttendanceRecord, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT id, student_id, class_id, subclass_id, checked_at
		FROM attendance
		WHERE checked_at >= $1 AND checked_at < $2
		ORDER BY checked_at
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanAttendance(rows)
}

func CountAttendanceByStudent(ctx context.Context, database *sql.DB, studentID int64) (int, error) {
	var n int
	err := database.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM attendance WHERE student_id = $1
	`, studentID).Scan(&n)
	return n, err
}

// CountAttendanceByClass soma presenças por turma no intervalo, entrada do
// relatório financeiro/operacional.
func CountAttendanceByClass(ctx context.Context, database *sql.DB, from, to time.Time) (map[int64]int, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT class_id, COUNT(*)
		FROM attendance
		WHERE checked_at >= $1 AND checked_at < $2
		GROUP BY class_id
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := make(map[int64]int)
	for rows.Next() {
		var classID int64
		var n int
		if err := rows.Scan(&classID, &n); err != nil {
			return nil, err
		}
		out[classID] = n
	}
	return out, rows.Err()
}

func scanAttendance(rows *sql.Rows) ([]models.AttendanceRecord, error) {
	var out []models.AttendanceRecord
	for rows.Next() {
		var r models.AttendanceRecord
		if err := rows.Scan(&r.ID, &r.StudentID, &r.ClassID, &r.SubclassID, &r.CheckedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
