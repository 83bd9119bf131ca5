package models

import "time"

// RankingSnapshot é uma linha do ranking congelado de uma semana encerrada.
type RankingSnapshot struct {
	ID        int64     `db:"id"`
	WeekStart time.Time `db:"week_start"`
	StudentID int64     `db:"student_id"`
	Position  int       `db:"position"`
	Points    int       `db:"points"`
	Checkins  int       `db:"checkins"`
	Posts     int       `db:"posts"`
	CreatedAt time.Time `db:"created_at"`

	StudentName string `db:"student_name"`
}
