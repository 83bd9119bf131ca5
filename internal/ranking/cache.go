package ranking

import (
	"sync"
	"time"
)

// WeeklyCache guarda o último ranking calculado da semana corrente. Quem
// escreve presença ou post publica uma dica de mudança; o assinante (montado
// no bootstrap) só invalida o cache e o próximo GET recalcula do banco.
// O cache nunca é fonte de verdade, apenas poupa a agregação por requisição.
type WeeklyCache struct {
	mu        sync.Mutex
	weekStart time.Time
	entries   []Entry
	valid     bool
}

func NewWeeklyCache() *WeeklyCache { return &WeeklyCache{} }

// Get devolve o ranking cacheado se for da mesma semana e ainda válido.
func (c *WeeklyCache) Get(weekStart time.Time) ([]Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.valid || !c.weekStart.Equal(weekStart) {
		return nil, false
	}
	return c.entries, true
}

func (c *WeeklyCache) Put(weekStart time.Time, entries []Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.weekStart = weekStart
	c.entries = entries
	c.valid = true
}

// Invalidate marca o cache como vencido. Seguro de chamar de qualquer
// goroutine; a dica de mudança não diz O QUE mudou, então descarta tudo.
func (c *WeeklyCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
	c.entries = nil
}
