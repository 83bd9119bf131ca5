package ranking

import (
	"testing"
	"time"

	"github.com/tatamelab/tatame/internal/realtime"
)

func TestWeeklyCache_HitAndMiss(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	week := time.Date(2025, 6, 9, 0, 0, 0, 0, loc)

	c := NewWeeklyCache()
	if _, ok := c.Get(week); ok {
		t.Fatal("cache novo não pode acertar")
	}

	entries := []Entry{{StudentID: 1, Score: 4}}
	c.Put(week, entries)

	got, ok := c.Get(week)
	if !ok || len(got) != 1 || got[0].StudentID != 1 {
		t.Fatalf("esperava acerto com a mesma semana: %v %v", got, ok)
	}

	// semana diferente: o cache da anterior não serve
	nextWeek := week.AddDate(0, 0, 7)
	if _, ok := c.Get(nextWeek); ok {
		t.Fatal("semana virou, cache antigo não pode servir")
	}
}

func TestWeeklyCache_InvalidateOnHint(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	week := time.Date(2025, 6, 9, 0, 0, 0, 0, loc)

	c := NewWeeklyCache()
	hub := realtime.NewHub()
	hub.Subscribe("attendance", func(realtime.Change) { c.Invalidate() })
	hub.Subscribe("training_posts", func(realtime.Change) { c.Invalidate() })

	c.Put(week, []Entry{{StudentID: 1, Score: 2}})
	if _, ok := c.Get(week); !ok {
		t.Fatal("cache recém-preenchido deveria acertar")
	}

	hub.Publish(realtime.Change{Table: "attendance", Op: realtime.OpInsert})
	if _, ok := c.Get(week); ok {
		t.Fatal("check-in novo tem que invalidar o ranking cacheado")
	}

	c.Put(week, []Entry{{StudentID: 1, Score: 3}})
	hub.Publish(realtime.Change{Table: "training_posts", Op: realtime.OpInsert})
	if _, ok := c.Get(week); ok {
		t.Fatal("post novo tem que invalidar o ranking cacheado")
	}

	// tabela que não entra na pontuação não derruba o cache
	c.Put(week, []Entry{{StudentID: 1, Score: 3}})
	hub.Publish(realtime.Change{Table: "comments", Op: realtime.OpInsert})
	if _, ok := c.Get(week); !ok {
		t.Fatal("comentário não muda pontuação, cache deveria sobreviver")
	}
}
