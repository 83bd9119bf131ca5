package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/tatamelab/tatame/internal/models"
)

// InsertTrainingPost: um post por aluno por dia. A violação do índice único
// vira ErrDuplicateDay: estado benigno, não falha.
func InsertTrainingPost(ctx context.Context, database *sql.DB, p models.TrainingPost) (int64, error) {
	var id int64
	err := database.QueryRowContext(ctx, `
		INSERT INTO training_posts (student_id, post_date, photo_ref, caption)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, p.StudentID, p.PostDate.Format("2006-01-02"), p.PhotoRef, p.Caption).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateDay
		}
		return 0, err
	}
	return id, nil
}

func ListTrainingPostsSince(ctx context.Context, database *sql.DB, since time.Time) ([]models.TrainingPost, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT p.id, p.student_id, p.post_date, p.photo_ref, p.caption, p.created_at,
		       s.name,
		       (SELECT COUNT(*) FROM reactions r WHERE r.post_id = p.id),
		       (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id)
		FROM training_posts p
		JOIN students s ON s.id = p.student_id
		WHERE p.post_date >= $1
		ORDER BY p.created_at DESC
	`, since.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.TrainingPost
	for rows.Next() {
		var p models.TrainingPost
		if err := rows.Scan(&p.ID, &p.StudentID, &p.PostDate, &p.PhotoRef, &p.Caption, &p.CreatedAt,
			&p.StudentName, &p.ReactionCount, &p.CommentCount); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListTrainingPostsBetween: só os campos que a agregação usa, intervalo
// fechado-aberto [from, to).
func ListTrainingPostsBetween(ctx context.Context, database *sql.DB, from, to time.Time) ([]models.TrainingPost, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT id, student_id, post_date, created_at
		FROM training_posts
		WHERE post_date >= $1 AND post_date < $2
		ORDER BY created_at
	`, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.TrainingPost
	for rows.Next() {
		var p models.TrainingPost
		if err := rows.Scan(&p.ID, &p.StudentID, &p.PostDate, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// InsertReaction é idempotente por (post, aluno): reagir de novo só troca o emoji.
func InsertReaction(ctx context.Context, database *sql.DB, r models.Reaction) error {
	_, err := database.ExecContext(ctx, `
		INSERT INTO reactions (post_id, student_id, emoji)
		VALUES ($1, $2, $3)
		ON CONFLICT (post_id, student_id) DO UPDATE SET emoji = excluded.emoji
	`, r.PostID, r.StudentID, r.Emoji)
	return err
}

func DeleteReaction(ctx context.Context, database *sql.DB, postID, studentID int64) error {
	_, err := database.ExecContext(ctx, `
		DELETE FROM reactions WHERE post_id = $1 AND student_id = $2
	`, postID, studentID)
	return err
}

func InsertComment(ctx context.Context, database *sql.DB, c models.Comment) (int64, error) {
	var id int64
	err := database.QueryRowContext(ctx, `
		INSERT INTO comments (post_id, student_id, body)
		VALUES ($1, $2, $3)
		RETURNING id
	`, c.PostID, c.StudentID, c.Body).Scan(&id)
	return id, err
}

func ListComments(ctx context.Context, database *sql.DB, postID int64) ([]models.Comment, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT c.id, c.post_id, c.student_id, c.body, c.created_at, s.name
		FROM comments c
		JOIN students s ON s.id = c.student_id
		WHERE c.post_id = $1
		ORDER BY c.created_at
	`, postID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.StudentID, &c.Body, &c.CreatedAt, &c.StudentName); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func CountPostsByStudent(ctx context.Context, database *sql.DB, studentID int64) (int, error) {
	var n int
	err := database.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM training_posts WHERE student_id = $1
	`, studentID).Scan(&n)
	return n, err
}
