package ranking

import (
	"testing"
	"time"

	"github.com/tatamelab/tatame/internal/models"
)

func checkins(studentID int64, n int) []models.AttendanceRecord {
	var out []models.AttendanceRecord
	for i := 0; i < n; i++ {
		out = append(out, models.AttendanceRecord{StudentID: studentID, ClassID: 1})
	}
	return out
}

func TestAggregate_Scoring(t *testing.T) {
	att := append(checkins(1, 3), checkins(2, 1)...)
	posts := []models.TrainingPost{{StudentID: 1}}

	entries := Aggregate(att, posts, DefaultScoring())
	if len(entries) != 2 {
		t.Fatalf("esperava 2 alunos, veio %d", len(entries))
	}
	if entries[0].StudentID != 1 || entries[0].Score != 7 {
		t.Fatalf("aluno 1: 3 check-ins + 1 post = 7 pontos, veio %+v", entries[0])
	}
	if entries[0].CheckinCount != 3 || entries[0].PostCount != 1 {
		t.Fatalf("contadores errados: %+v", entries[0])
	}
	if entries[1].StudentID != 2 || entries[1].Score != 2 {
		t.Fatalf("aluno 2: 1 check-in = 2 pontos, veio %+v", entries[1])
	}
}

func TestAggregate_StableTie(t *testing.T) {
	// 7 e 9 empatam com 1 check-in cada; 7 apareceu primeiro e fica na frente
	att := []models.AttendanceRecord{
		{StudentID: 7, ClassID: 1},
		{StudentID: 9, ClassID: 1},
	}
	entries := Aggregate(att, nil, DefaultScoring())
	if entries[0].StudentID != 7 || entries[1].StudentID != 9 {
		t.Fatalf("empate deve manter ordem de chegada, veio %+v", entries)
	}

	// mesma entrada, mesma saída: o ranking não pode "dançar"
	again := Aggregate(att, nil, DefaultScoring())
	for i := range entries {
		if entries[i] != again[i] {
			t.Fatalf("reexecução mudou a ordem: %+v vs %+v", entries, again)
		}
	}
}

func TestAggregate_Empty(t *testing.T) {
	if entries := Aggregate(nil, nil, DefaultScoring()); len(entries) != 0 {
		t.Fatalf("sem dados, ranking vazio; veio %+v", entries)
	}
}

func TestDefaultWeeklyGoal_DistinctDays(t *testing.T) {
	enr := []models.Enrollment{
		{Schedule: "segunda, quarta"},
		{Schedule: "quarta, sexta"},
	}
	if g := DefaultWeeklyGoal(enr); g != 3 {
		t.Fatalf("dias distintos: segunda, quarta, sexta = 3; veio %d", g)
	}
}

func TestDefaultWeeklyGoal_Fallback(t *testing.T) {
	if g := DefaultWeeklyGoal(nil); g != 3 {
		t.Fatalf("sem matrícula cai no padrão 3, veio %d", g)
	}
	enr := []models.Enrollment{{Schedule: "horário a definir"}}
	if g := DefaultWeeklyGoal(enr); g != 3 {
		t.Fatalf("texto sem dia reconhecível cai no padrão 3, veio %d", g)
	}
}

func TestWeekStart(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	// 2025-06-11 é quarta; a semana começou na segunda 2025-06-09
	now := time.Date(2025, 6, 11, 15, 0, 0, 0, loc)
	ws := WeekStart(now)
	if ws.Day() != 9 || ws.Hour() != 0 {
		t.Fatalf("esperava segunda 09/06 00:00, veio %s", ws)
	}
	// domingo fecha a semana que começou na segunda anterior
	sunday := time.Date(2025, 6, 8, 10, 0, 0, 0, loc)
	if ws := WeekStart(sunday); ws.Day() != 2 {
		t.Fatalf("domingo 08/06 pertence à semana de 02/06, veio %s", ws)
	}
}

func TestProgress(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	att := []models.AttendanceRecord{
		{StudentID: 1, CheckedAt: time.Date(2025, 6, 9, 19, 0, 0, 0, loc)},  // segunda
		{StudentID: 1, CheckedAt: time.Date(2025, 6, 9, 20, 0, 0, 0, loc)},  // segunda de novo
		{StudentID: 1, CheckedAt: time.Date(2025, 6, 11, 19, 0, 0, 0, loc)}, // quarta
	}
	p := Progress(3, att, loc)
	if p.Done != 2 {
		t.Fatalf("dois check-ins no mesmo dia contam um: esperava 2, veio %d", p.Done)
	}
	if p.GoalMet {
		t.Fatal("meta 3 com 2 dias não está batida")
	}
}
