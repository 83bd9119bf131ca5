package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/tatamelab/tatame/internal/models"
)

// UpsertAchievementProgress grava o contador e marca o desbloqueio quando o
// alvo é atingido. unlocked_at nunca regride.
func UpsertAchievementProgress(ctx context.Context, database *sql.DB, studentID int64, code models.AchievementCode, progress, target int) error {
	_, err := database.ExecContext(ctx, `
		INSERT INTO achievement_progress (student_id, code, progress, target, unlocked_at, updated_at)
		VALUES ($1, $2, $3, $4, CASE WHEN $3 >= $4 THEN now() END, now())
		ON CONFLICT (student_id, code) DO UPDATE SET
			progress = excluded.progress,
			updated_at = now(),
			unlocked_at = COALESCE(achievement_progress.unlocked_at, excluded.unlocked_at)
	`, studentID, code, progress, target)
	return err
}

func ListAchievementProgress(ctx context.Context, database *sql.DB, studentID int64) ([]models.AchievementProgress, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT id, student_id, code, progress, target, unlocked_at, updated_at
		FROM achievement_progress
		WHERE student_id = $1
		ORDER BY code
	`, studentID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.AchievementProgress
	for rows.Next() {
		var a models.AchievementProgress
		if err := rows.Scan(&a.ID, &a.StudentID, &a.Code, &a.Progress, &a.Target, &a.UnlockedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// StreakDays conta dias consecutivos com check-in terminando em `today`
// (data já no fuso de referência, truncada para meia-noite).
func StreakDays(ctx context.Context, database *sql.DB, studentID int64, today time.Time) (int, error) {
	// dias distintos com presença, do mais recente para trás
	rows, err := database.QueryContext(ctx, `
		SELECT DISTINCT checked_on FROM attendance
		WHERE student_id = $1 AND checked_on <= $2
		ORDER BY checked_on DESC
		LIMIT 60
	`, studentID, today.Format("2006-01-02"))
	if err != nil {
		return 0, err
	}
	defer func() { _ = rows.Close() }()

	streak := 0
	expect := today
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return 0, err
		}
		if d.Format("2006-01-02") != expect.Format("2006-01-02") {
			break
		}
		streak++
		expect = expect.AddDate(0, 0, -1)
	}
	return streak, rows.Err()
}
