// Package achievements mantém os contadores de conquistas. O avaliador roda
// depois de cada mutação relevante e sempre recalcula a partir do estado do
// banco, nunca em contadores carregados na notificação.
package achievements

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/tatamelab/tatame/internal/db"
	"github.com/tatamelab/tatame/internal/models"
)

var checkinTargets = []struct {
	code   models.AchievementCode
	target int
}{
	{models.AchFirstCheckin, 1},
	{models.AchCheckins10, 10},
	{models.AchCheckins50, 50},
	{models.AchCheckins100, 100},
}

type Evaluator struct {
	DB    *sql.DB
	Loc   *time.Location
	Sugar *zap.SugaredLogger
}

// OnCheckin atualiza conquistas de presença e a sequência de dias.
// Erro aqui não derruba o check-in do aluno: o chamador só loga.
func (e *Evaluator) OnCheckin(ctx context.Context, studentID int64) error {
	n, err := db.CountAttendanceByStudent(ctx, e.DB, studentID)
	if err != nil {
		return err
	}
	for _, t := range checkinTargets {
		if err := db.UpsertAchievementProgress(ctx, e.DB, studentID, t.code, n, t.target); err != nil {
			return err
		}
	}

	today := time.Now().In(e.Loc)
	streak, err := db.StreakDays(ctx, e.DB, studentID, today)
	if err != nil {
		return err
	}
	if err := db.UpsertAchievementProgress(ctx, e.DB, studentID, models.AchStreak7, streak, 7); err != nil {
		return err
	}

	if e.Sugar != nil {
		e.Sugar.Debugw("conquistas reavaliadas", "student_id", studentID, "checkins", n, "streak", streak)
	}
	return nil
}

// OnPost atualiza conquistas ligadas ao feed de treino.
func (e *Evaluator) OnPost(ctx context.Context, studentID int64) error {
	n, err := db.CountPostsByStudent(ctx, e.DB, studentID)
	if err != nil {
		return err
	}
	return db.UpsertAchievementProgress(ctx, e.DB, studentID, models.AchFirstPost, n, 1)
}
