package schedule

import (
	"testing"
	"time"
)

var loc = time.FixedZone("BRT", -3*3600)

// 2025-06-09 é segunda; 2025-06-10 terça; 2025-06-08 domingo.
func at(day int, hour, min int) time.Time {
	return time.Date(2025, 6, day, hour, min, 0, 0, loc)
}

func TestParseWindow_DayMatch(t *testing.T) {
	w := ParseWindow("Segunda e Quarta, 19h-20h", at(9, 10, 0))
	if !w.MatchedToday {
		t.Fatal("segunda deveria casar na segunda-feira")
	}
	if !w.HasStart || w.StartHour != 19 {
		t.Fatalf("esperava hora 19, veio %+v", w)
	}

	w = ParseWindow("Segunda e Quarta, 19h-20h", at(10, 10, 0))
	if w.MatchedToday {
		t.Fatal("terça não deveria casar")
	}
}

func TestParseWindow_AccentVariants(t *testing.T) {
	for _, text := range []string{"Terça, 19h", "terca 19h"} {
		w := ParseWindow(text, at(10, 10, 0))
		if !w.MatchedToday {
			t.Fatalf("%q deveria casar na terça", text)
		}
	}
}

func TestParseWindow_NoHourToken(t *testing.T) {
	w := ParseWindow("Segunda e Quarta", at(9, 10, 0))
	if !w.MatchedToday {
		t.Fatal("dia deveria casar")
	}
	if w.HasStart {
		t.Fatal("sem token de hora não pode ter StartHour")
	}
}

func TestParseWindow_FirstHourTokenOnly(t *testing.T) {
	// limitação documentada: só a primeira faixa conta
	w := ParseWindow("Segunda, 7h-8h e 19h-20h", at(9, 10, 0))
	if !w.HasStart || w.StartHour != 7 {
		t.Fatalf("esperava primeira hora (7), veio %+v", w)
	}
}

func TestOpensAt(t *testing.T) {
	w := Window{MatchedToday: true, StartHour: 19, HasStart: true}
	open := w.OpensAt(at(10, 12, 0))
	if open.Hour() != 18 || open.Minute() != 30 {
		t.Fatalf("aula às 19h abre às 18:30, veio %s", open.Format("15:04"))
	}
}

func TestOpensAt_MidnightWrap(t *testing.T) {
	w := Window{MatchedToday: true, StartHour: 0, HasStart: true}
	open := w.OpensAt(at(8, 22, 0))
	if open.Hour() != 23 || open.Minute() != 30 {
		t.Fatalf("aula à 0h abre às 23:30 do mesmo dia, veio %s", open.Format("15:04"))
	}
	if open.Day() != 8 {
		t.Fatalf("a janela não muda de dia, veio dia %d", open.Day())
	}
}

func TestWeekdays_Distinct(t *testing.T) {
	days := Weekdays("segunda, quarta e segunda de novo")
	if len(days) != 2 {
		t.Fatalf("esperava 2 dias distintos, veio %v", days)
	}
}
