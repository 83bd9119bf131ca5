package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/tatamelab/tatame/internal/models"
)

// HasRankingSnapshot diz se a semana já foi congelada. O job usa isso para
// ser idempotente: rodar de novo na mesma semana não grava nada.
func HasRankingSnapshot(ctx context.Context, database *sql.DB, weekStart time.Time) (bool, error) {
	var n int
	err := database.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM ranking_snapshots WHERE week_start = $1
	`, weekStart.Format("2006-01-02")).Scan(&n)
	return n > 0, err
}

// SaveRankingSnapshot grava todas as posições da semana em uma transação.
// ON CONFLICT DO NOTHING cobre a corrida de dois processos na virada.
func SaveRankingSnapshot(ctx context.Context, database *sql.DB, weekStart time.Time, rows []models.RankingSnapshot) error {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, r := range rows {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO ranking_snapshots (week_start, student_id, position, points, checkins, posts)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (week_start, student_id) DO NOTHING
		`, weekStart.Format("2006-01-02"), r.StudentID, r.Position, r.Points, r.Checkins, r.Posts); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func ListRankingSnapshot(ctx context.Context, database *sql.DB, weekStart time.Time) ([]models.RankingSnapshot, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT r.id, r.week_start, r.student_id, r.position, r.points, r.checkins, r.posts, r.created_at,
		       s.name
		FROM ranking_snapshots r
		JOIN students s ON s.id = r.student_id
		WHERE r.week_start = $1
		ORDER BY r.position
	`, weekStart.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.RankingSnapshot
	for rows.Next() {
		var r models.RankingSnapshot
		if err := rows.Scan(&r.ID, &r.WeekStart, &r.StudentID, &r.Position, &r.Points, &r.Checkins, &r.Posts, &r.CreatedAt, &r.StudentName); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
