// Package ranking agrega check-ins e posts da semana em pontuação por aluno.
// Tudo aqui opera sobre dados já carregados pelo chamador; nada toca o banco.
package ranking

import (
	"sort"
	"time"

	"github.com/tatamelab/tatame/internal/models"
	"github.com/tatamelab/tatame/internal/schedule"
)

type Scoring struct {
	Checkin int
	Post    int
}

// DefaultScoring: check-in vale mais que post para premiar presença física.
func DefaultScoring() Scoring { return Scoring{Checkin: 2, Post: 1} }

type Entry struct {
	StudentID    int64
	Score        int
	CheckinCount int
	PostCount    int
}

// Aggregate soma em uma única passada e ordena por pontuação decrescente.
// Empate preserva a ordem de primeira aparição nos dados de entrada, a
// ordenação é estável de propósito, para que o ranking não "dance" entre
// recargas com os mesmos dados.
func Aggregate(attendance []models.AttendanceRecord, posts []models.TrainingPost, scoring Scoring) []Entry {
	idx := make(map[int64]int)
	var entries []Entry

	at := func(studentID int64) *Entry {
		if i, ok := idx[studentID]; ok {
			return &entries[i]
		}
		idx[studentID] = len(entries)
		entries = append(entries, Entry{StudentID: studentID})
		return &entries[len(entries)-1]
	}

	for _, rec := range attendance {
		e := at(rec.StudentID)
		e.CheckinCount++
		e.Score += scoring.Checkin
	}
	for _, p := range posts {
		e := at(p.StudentID)
		e.PostCount++
		e.Score += scoring.Post
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	return entries
}

// DefaultWeeklyGoal conta os dias DISTINTOS de treino entre todas as turmas
// do aluno: duas turmas na segunda contam um dia só. Sem dia reconhecível
// no texto (ou sem matrícula), cai no padrão de 3 treinos por semana.
func DefaultWeeklyGoal(enrollments []models.Enrollment) int {
	days := make(map[time.Weekday]bool)
	for _, e := range enrollments {
		for _, wd := range schedule.Weekdays(e.Schedule) {
			days[wd] = true
		}
	}
	if len(days) == 0 {
		return 3
	}
	return len(days)
}
