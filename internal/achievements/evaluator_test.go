//go:build testutil
// +build testutil

package achievements_test

import (
	"context"
	"testing"
	"time"

	"github.com/tatamelab/tatame/internal/achievements"
	"github.com/tatamelab/tatame/internal/db"
	"github.com/tatamelab/tatame/internal/models"
	"github.com/tatamelab/tatame/internal/testutil/testdb"
)

func TestEvaluator_FirstCheckin(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	st, err := db.CreateStudent(ctx, h.DB, models.Student{Name: "Ana", Belt: "branca", WeeklyGoal: 3})
	if err != nil {
		t.Fatal(err)
	}
	cl, err := db.CreateClass(ctx, h.DB, models.ClassOffering{Name: "Adulto Gi", Schedule: "Segunda, 19h", Capacity: 30})
	if err != nil {
		t.Fatal(err)
	}

	now := time.Now().UTC()
	if _, err := db.InsertAttendance(ctx, h.DB, models.AttendanceRecord{
		StudentID: st, ClassID: cl, CheckedAt: now,
	}, now); err != nil {
		t.Fatal(err)
	}

	ev := &achievements.Evaluator{DB: h.DB, Loc: time.UTC}
	if err := ev.OnCheckin(ctx, st); err != nil {
		t.Fatal(err)
	}

	list, err := db.ListAchievementProgress(ctx, h.DB, st)
	if err != nil {
		t.Fatal(err)
	}
	byCode := map[models.AchievementCode]models.AchievementProgress{}
	for _, a := range list {
		byCode[a.Code] = a
	}

	first := byCode[models.AchFirstCheckin]
	if first.UnlockedAt == nil {
		t.Fatal("primeiro check-in deveria desbloquear na hora")
	}
	ten := byCode[models.AchCheckins10]
	if ten.Progress != 1 || ten.UnlockedAt != nil {
		t.Fatalf("checkins_10 deveria estar 1/10 sem desbloqueio: %+v", ten)
	}
	streak := byCode[models.AchStreak7]
	if streak.Progress != 1 {
		t.Fatalf("sequência deveria ser 1, veio %d", streak.Progress)
	}
}

func TestEvaluator_FirstPost(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	st, err := db.CreateStudent(ctx, h.DB, models.Student{Name: "Bruno", Belt: "azul", WeeklyGoal: 3})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.InsertTrainingPost(ctx, h.DB, models.TrainingPost{
		StudentID: st, PostDate: time.Now().UTC(), Caption: "oss",
	}); err != nil {
		t.Fatal(err)
	}

	ev := &achievements.Evaluator{DB: h.DB, Loc: time.UTC}
	if err := ev.OnPost(ctx, st); err != nil {
		t.Fatal(err)
	}

	list, err := db.ListAchievementProgress(ctx, h.DB, st)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Code != models.AchFirstPost || list[0].UnlockedAt == nil {
		t.Fatalf("esperava first_post desbloqueada, veio %+v", list)
	}
}
