//go:build testutil
// +build testutil

package checkin_test

import (
	"context"
	"testing"
	"time"

	"github.com/tatamelab/tatame/internal/checkin"
	"github.com/tatamelab/tatame/internal/db"
	"github.com/tatamelab/tatame/internal/models"
	"github.com/tatamelab/tatame/internal/realtime"
	"github.com/tatamelab/tatame/internal/testutil/testdb"
)

func TestService_Register(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	stID, err := db.CreateStudent(ctx, h.DB, models.Student{Name: "Ana", Belt: "roxa", WeeklyGoal: 3})
	if err != nil {
		t.Fatal(err)
	}
	clID, err := db.CreateClass(ctx, h.DB, models.ClassOffering{
		Name: "Adulto Gi", Schedule: "Segunda e Quarta, 19h-20h", Capacity: 30,
	})
	if err != nil {
		t.Fatal(err)
	}

	loc := time.FixedZone("BRT", -3*3600)
	monday19 := time.Date(2025, 6, 9, 19, 0, 0, 0, loc)

	hub := realtime.NewHub()
	hints := 0
	sub := hub.Subscribe("attendance", func(realtime.Change) { hints++ })
	defer sub.Cancel()

	svc := &checkin.Service{DB: h.DB, Hub: hub, Loc: loc, Now: func() time.Time { return monday19 }}

	res, err := svc.Register(ctx, stID, clID, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Recorded || !res.Decision.Available {
		t.Fatalf("segunda às 19h está na janela: %+v", res)
	}
	if hints != 1 {
		t.Fatalf("check-in gravado publica aviso; avisos=%d", hints)
	}

	// repetir no mesmo dia: benigno
	res, err = svc.Register(ctx, stID, clID, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !res.AlreadyDone || res.Recorded {
		t.Fatalf("duplicado deveria voltar AlreadyDone: %+v", res)
	}
	if hints != 1 {
		t.Fatal("duplicado não publica aviso")
	}

	// terça não é dia dessa turma
	tuesday := monday19.AddDate(0, 0, 1)
	svc.Now = func() time.Time { return tuesday }
	res, err = svc.Register(ctx, stID, clID, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Recorded || res.Decision.Available {
		t.Fatalf("fora do dia de treino não grava: %+v", res)
	}
}
