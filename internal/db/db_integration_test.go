//go:build testutil
// +build testutil

package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/tatamelab/tatame/internal/db"
	"github.com/tatamelab/tatame/internal/models"
	"github.com/tatamelab/tatame/internal/testutil/testdb"
)

func seedStudent(t *testing.T, database *sql.DB, name string) int64 {
	t.Helper()
	id, err := db.CreateStudent(context.Background(), database, models.Student{
		Name: name, Belt: "branca", WeeklyGoal: 3,
	})
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func seedClass(t *testing.T, database *sql.DB, name, sched string, free bool) int64 {
	t.Helper()
	id, err := db.CreateClass(context.Background(), database, models.ClassOffering{
		Name: name, Schedule: sched, IsFree: free, Capacity: 30,
	})
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func TestAttendance_OnePerDay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	st := seedStudent(t, h.DB, "Ana")
	cl := seedClass(t, h.DB, "Adulto Gi", "Segunda e Quarta, 19h-20h", false)

	now := time.Now().UTC()
	rec := models.AttendanceRecord{StudentID: st, ClassID: cl, CheckedAt: now}

	if _, err := db.InsertAttendance(ctx, h.DB, rec, now); err != nil {
		t.Fatal(err)
	}
	// segundo check-in do dia: violação vira ErrDuplicateDay
	_, err = db.InsertAttendance(ctx, h.DB, rec, now)
	if !errors.Is(err, db.ErrDuplicateDay) {
		t.Fatalf("esperava ErrDuplicateDay, veio %v", err)
	}

	// dia seguinte pode de novo
	tomorrow := now.AddDate(0, 0, 1)
	rec.CheckedAt = tomorrow
	if _, err := db.InsertAttendance(ctx, h.DB, rec, tomorrow); err != nil {
		t.Fatal(err)
	}
}

func TestTrainingPost_OnePerDay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	st := seedStudent(t, h.DB, "Bruno")
	day := time.Now().UTC()

	if _, err := db.InsertTrainingPost(ctx, h.DB, models.TrainingPost{
		StudentID: st, PostDate: day, Caption: "treino pago",
	}); err != nil {
		t.Fatal(err)
	}
	_, err = db.InsertTrainingPost(ctx, h.DB, models.TrainingPost{
		StudentID: st, PostDate: day, Caption: "de novo",
	})
	if !errors.Is(err, db.ErrDuplicateDay) {
		t.Fatalf("esperava ErrDuplicateDay, veio %v", err)
	}
}

func TestEnrollment_SingleRegular(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	st := seedStudent(t, h.DB, "Carla")
	regular1 := seedClass(t, h.DB, "Adulto Gi", "Segunda, 19h", false)
	regular2 := seedClass(t, h.DB, "Adulto NoGi", "Quarta, 20h", false)
	free := seedClass(t, h.DB, "Yoga", "Sexta, 7h", true)

	if _, err := db.CreateEnrollment(ctx, h.DB, st, regular1); err != nil {
		t.Fatal(err)
	}
	// segunda regular direta: barrada
	_, err = db.CreateEnrollment(ctx, h.DB, st, regular2)
	if !errors.Is(err, db.ErrRegularEnrollmentExists) {
		t.Fatalf("esperava ErrRegularEnrollmentExists, veio %v", err)
	}
	// turma gratuita não conta como regular
	if _, err := db.CreateEnrollment(ctx, h.DB, st, free); err != nil {
		t.Fatal(err)
	}

	// o caminho certo: solicitação + aprovação
	reqID, err := db.CreateEnrollmentRequest(ctx, h.DB, st, regular2)
	if err != nil {
		t.Fatal(err)
	}
	if err := db.DecideEnrollmentRequest(ctx, h.DB, reqID, 1, true); err != nil {
		t.Fatal(err)
	}

	list, err := db.ListEnrollments(ctx, h.DB, st)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Fatalf("esperava 3 matrículas após aprovação, veio %d", len(list))
	}

	pend, err := db.ListPendingEnrollmentRequests(ctx, h.DB)
	if err != nil {
		t.Fatal(err)
	}
	if len(pend) != 0 {
		t.Fatalf("solicitação decidida não pode seguir pendente: %+v", pend)
	}
}
