// Package realtime distribui "dicas" de mudança em memória: quem assina uma
// tabela recebe um aviso de que algo mudou e deve REBUSCAR o estado no banco.
// A dica nunca carrega o dado em si e a entrega é melhor-esforço; consumidor
// que perder um aviso só fica desatualizado até o próximo fetch.
package realtime

import (
	"sync"

	"github.com/tatamelab/tatame/internal/metrics"
)

type Op string

const (
	OpInsert Op = "insert"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

type Change struct {
	Table string
	Op    Op
}

type Handler func(Change)

type Subscription struct {
	hub   *Hub
	table string
	id    int64
}

// Cancel remove a assinatura. Idempotente.
func (s *Subscription) Cancel() {
	if s == nil || s.hub == nil {
		return
	}
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	delete(s.hub.subs[s.table], s.id)
	s.hub = nil
}

type Hub struct {
	mu     sync.RWMutex
	nextID int64
	subs   map[string]map[int64]Handler
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[int64]Handler)}
}

func (h *Hub) Subscribe(table string, fn Handler) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	if h.subs[table] == nil {
		h.subs[table] = make(map[int64]Handler)
	}
	h.subs[table][h.nextID] = fn
	return &Subscription{hub: h, table: table, id: h.nextID}
}

// Publish chama os handlers de forma síncrona, na goroutine do publicador.
// Handlers precisam ser rápidos; trabalho pesado vai para background próprio.
func (h *Hub) Publish(c Change) {
	h.mu.RLock()
	handlers := make([]Handler, 0, len(h.subs[c.Table]))
	for _, fn := range h.subs[c.Table] {
		handlers = append(handlers, fn)
	}
	h.mu.RUnlock()

	metrics.ChangeHints.WithLabelValues(c.Table).Inc()
	for _, fn := range handlers {
		fn(c)
	}
}
