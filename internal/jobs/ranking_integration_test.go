//go:build testutil
// +build testutil

package jobs_test

import (
	"context"
	"testing"
	"time"

	"github.com/tatamelab/tatame/internal/db"
	"github.com/tatamelab/tatame/internal/jobs"
	"github.com/tatamelab/tatame/internal/models"
	"github.com/tatamelab/tatame/internal/testutil/testdb"
)

func TestSnapshotWeek(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	ana, err := db.CreateStudent(ctx, h.DB, models.Student{Name: "Ana", Belt: "roxa", WeeklyGoal: 3})
	if err != nil {
		t.Fatal(err)
	}
	bruno, err := db.CreateStudent(ctx, h.DB, models.Student{Name: "Bruno", Belt: "azul", WeeklyGoal: 3})
	if err != nil {
		t.Fatal(err)
	}
	cl, err := db.CreateClass(ctx, h.DB, models.ClassOffering{Name: "Adulto Gi", Schedule: "Segunda e Quarta, 19h", Capacity: 30})
	if err != nil {
		t.Fatal(err)
	}

	loc := time.FixedZone("BRT", -3*3600)
	// "agora" é segunda 2025-06-09; a semana encerrada começou em 2025-06-02
	now := time.Date(2025, 6, 9, 8, 0, 0, 0, loc)
	prevWeek := time.Date(2025, 6, 2, 0, 0, 0, 0, loc)

	// Ana: dois check-ins e um post (5 pts); Bruno: um check-in (2 pts)
	for _, day := range []time.Time{prevWeek.AddDate(0, 0, 1), prevWeek.AddDate(0, 0, 3)} {
		if _, err := db.InsertAttendance(ctx, h.DB, models.AttendanceRecord{
			StudentID: ana, ClassID: cl, CheckedAt: day,
		}, day); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := db.InsertTrainingPost(ctx, h.DB, models.TrainingPost{
		StudentID: ana, PostDate: prevWeek.AddDate(0, 0, 1), Caption: "oss",
	}); err != nil {
		t.Fatal(err)
	}
	brunoDay := prevWeek.AddDate(0, 0, 2)
	if _, err := db.InsertAttendance(ctx, h.DB, models.AttendanceRecord{
		StudentID: bruno, ClassID: cl, CheckedAt: brunoDay,
	}, brunoDay); err != nil {
		t.Fatal(err)
	}
	// atividade da semana CORRENTE não pode vazar para a foto
	if _, err := db.InsertAttendance(ctx, h.DB, models.AttendanceRecord{
		StudentID: bruno, ClassID: cl, CheckedAt: now,
	}, now); err != nil {
		t.Fatal(err)
	}

	if err := jobs.SnapshotWeek(ctx, h.DB, now, nil); err != nil {
		t.Fatal(err)
	}

	rows, err := db.ListRankingSnapshot(ctx, h.DB, prevWeek)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("esperava 2 posições, veio %d: %+v", len(rows), rows)
	}
	if rows[0].StudentID != ana || rows[0].Position != 1 || rows[0].Points != 5 {
		t.Fatalf("1º lugar errado: %+v", rows[0])
	}
	if rows[1].StudentID != bruno || rows[1].Position != 2 || rows[1].Points != 2 || rows[1].Checkins != 1 {
		t.Fatalf("2º lugar errado: %+v", rows[1])
	}

	// rodar de novo na mesma semana não duplica nem regrava
	if err := jobs.SnapshotWeek(ctx, h.DB, now.Add(time.Hour), nil); err != nil {
		t.Fatal(err)
	}
	rows, err = db.ListRankingSnapshot(ctx, h.DB, prevWeek)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("segunda execução mudou a foto: %d linhas", len(rows))
	}
}

func TestSnapshotWeek_EmptyWeek(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	loc := time.FixedZone("BRT", -3*3600)
	now := time.Date(2025, 6, 9, 8, 0, 0, 0, loc)

	if err := jobs.SnapshotWeek(ctx, h.DB, now, nil); err != nil {
		t.Fatal(err)
	}
	rows, err := db.ListRankingSnapshot(ctx, h.DB, time.Date(2025, 6, 2, 0, 0, 0, 0, loc))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Fatalf("semana vazia não vira foto: %+v", rows)
	}
}
