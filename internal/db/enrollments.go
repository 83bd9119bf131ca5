package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/tatamelab/tatame/internal/models"
)

// CreateEnrollment matricula o aluno direto. Só funciona como primeira
// matrícula regular (ou em turma gratuita); o índice parcial do banco
// barra a segunda regular e o erro vira ErrRegularEnrollmentExists;
// o caminho certo nesse caso é abrir um EnrollmentRequest.
func CreateEnrollment(ctx context.Context, database *sql.DB, studentID, classID int64) (int64, error) {
	class, err := GetClassByID(ctx, database, classID)
	if err != nil {
		return 0, err
	}
	if class == nil {
		return 0, fmt.Errorf("turma %d não existe", classID)
	}

	var id int64
	err = database.QueryRowContext(ctx, `
		INSERT INTO enrollments (student_id, class_id, is_regular)
		VALUES ($1, $2, $3)
		RETURNING id
	`, studentID, classID, !class.IsFree).Scan(&id)
	if err != nil {
		if constraintName(err) == "one_regular_enrollment" {
			return 0, ErrRegularEnrollmentExists
		}
		return 0, err
	}
	return id, nil
}

func ListEnrollments(ctx context.Context, database *sql.DB, studentID int64) ([]models.Enrollment, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT e.id, e.student_id, e.class_id, e.created_at, c.name, c.schedule, c.is_free
		FROM enrollments e
		JOIN classes c ON c.id = e.class_id
		WHERE e.student_id = $1
		ORDER BY e.created_at
	`, studentID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Enrollment
	for rows.Next() {
		var e models.Enrollment
		if err := rows.Scan(&e.ID, &e.StudentID, &e.ClassID, &e.CreatedAt, &e.ClassName, &e.Schedule, &e.IsFree); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func DeleteEnrollment(ctx context.Context, database *sql.DB, id int64) error {
	_, err := database.ExecContext(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	return err
}

func CreateEnrollmentRequest(ctx context.Context, database *sql.DB, studentID, classID int64) (int64, error) {
	var id int64
	err := database.QueryRowContext(ctx, `
		INSERT INTO enrollment_requests (student_id, class_id)
		VALUES ($1, $2)
		RETURNING id
	`, studentID, classID).Scan(&id)
	return id, err
}

func ListPendingEnrollmentRequests(ctx context.Context, database *sql.DB) ([]models.EnrollmentRequest, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT r.id, r.student_id, r.class_id, r.status, r.decided_by, r.decided_at, r.created_at,
		       s.name, c.name
		FROM enrollment_requests r
		JOIN students s ON s.id = r.student_id
		JOIN classes c ON c.id = r.class_id
		WHERE r.status = 'pending'
		ORDER BY r.created_at
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.EnrollmentRequest
	for rows.Next() {
		var r models.EnrollmentRequest
		if err := rows.Scan(&r.ID, &r.StudentID, &r.ClassID, &r.Status, &r.DecidedBy, &r.DecidedAt, &r.CreatedAt, &r.StudentName, &r.ClassName); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// DecideEnrollmentRequest aprova ou rejeita em transação: aprovação cria a
// matrícula ignorando o limite de uma regular (a aprovação É a exceção).
func DecideEnrollmentRequest(ctx context.Context, database *sql.DB, requestID, adminID int64, approve bool) error {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var studentID, classID int64
	err = tx.QueryRowContext(ctx, `
		SELECT student_id, class_id FROM enrollment_requests
		WHERE id = $1 AND status = 'pending'
		FOR UPDATE
	`, requestID).Scan(&studentID, &classID)
	if err != nil {
		return err
	}

	status := models.RequestRejected
	if approve {
		status = models.RequestApproved
		// matrícula extra aprovada entra como não-regular para não colidir
		// com o índice parcial
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO enrollments (student_id, class_id, is_regular)
			VALUES ($1, $2, FALSE)
			ON CONFLICT (student_id, class_id) DO NOTHING
		`, studentID, classID); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE enrollment_requests
		SET status = $2, decided_by = $3, decided_at = now()
		WHERE id = $1
	`, requestID, status, adminID); err != nil {
		return err
	}
	return tx.Commit()
}

func constraintName(err error) string {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.ConstraintName
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}
