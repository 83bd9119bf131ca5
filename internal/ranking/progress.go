package ranking

import (
	"time"

	"github.com/tatamelab/tatame/internal/models"
)

// WeekProgress é o estado da meta semanal de um aluno: quais dias da semana
// corrente já têm check-in registrado.
type WeekProgress struct {
	Goal    int
	Done    int
	Days    map[time.Weekday]bool
	GoalMet bool
}

// WeekStart devolve a meia-noite da segunda-feira da semana de `now`,
// no fuso de `now`. A semana de treino começa na segunda.
func WeekStart(now time.Time) time.Time {
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	offset := int(now.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7 // domingo fecha a semana, não abre
	}
	return midnight.AddDate(0, 0, -offset)
}

// Progress monta o mapa de dias concluídos a partir dos check-ins da semana.
// Dois check-ins no mesmo dia (turmas diferentes) contam um dia só.
func Progress(goal int, attendance []models.AttendanceRecord, loc *time.Location) WeekProgress {
	days := make(map[time.Weekday]bool)
	for _, rec := range attendance {
		days[rec.CheckedAt.In(loc).Weekday()] = true
	}
	p := WeekProgress{Goal: goal, Done: len(days), Days: days}
	p.GoalMet = goal > 0 && p.Done >= goal
	return p
}
