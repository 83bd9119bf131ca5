package jobs

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/tatamelab/tatame/internal/ctxutil"
	"github.com/tatamelab/tatame/internal/db"
	"github.com/tatamelab/tatame/internal/models"
	"github.com/tatamelab/tatame/internal/ranking"
)

// WeeklyRankingSnapshot congela o ranking da última semana encerrada.
// Roda de hora em hora mas só grava uma vez por semana (idempotente via
// HasRankingSnapshot + índice único); o resultado alimenta /ranking/history.
func WeeklyRankingSnapshot(database *sql.DB, loc *time.Location, sugar *zap.SugaredLogger) Job {
	return func(ctx context.Context) error {
		ctx, cancel := ctxutil.WithDBTimeout(ctx)
		defer cancel()
		return SnapshotWeek(ctx, database, time.Now().In(loc), sugar)
	}
}

// SnapshotWeek é o corpo do job com o relógio injetável.
func SnapshotWeek(ctx context.Context, database *sql.DB, now time.Time, sugar *zap.SugaredLogger) error {
	weekStart := ranking.WeekStart(now).AddDate(0, 0, -7)
	weekEnd := weekStart.AddDate(0, 0, 7)

	done, err := db.HasRankingSnapshot(ctx, database, weekStart)
	if err != nil || done {
		return err
	}

	attendance, err := db.ListAttendanceBetween(ctx, database, weekStart, weekEnd)
	if err != nil {
		return err
	}
	posts, err := db.ListTrainingPostsBetween(ctx, database, weekStart, weekEnd)
	if err != nil {
		return err
	}
	entries := ranking.Aggregate(attendance, posts, ranking.DefaultScoring())
	if len(entries) == 0 {
		return nil // semana sem atividade não vira foto
	}

	rows := make([]models.RankingSnapshot, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, models.RankingSnapshot{
			WeekStart: weekStart,
			StudentID: e.StudentID,
			Position:  i + 1,
			Points:    e.Score,
			Checkins:  e.CheckinCount,
			Posts:     e.PostCount,
		})
	}
	if err := db.SaveRankingSnapshot(ctx, database, weekStart, rows); err != nil {
		return err
	}
	if sugar != nil {
		sugar.Infow("ranking semanal congelado",
			"week_start", weekStart.Format("2006-01-02"), "alunos", len(rows))
	}
	return nil
}
