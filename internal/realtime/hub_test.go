package realtime

import "testing"

func TestHub_PublishReachesSubscribers(t *testing.T) {
	h := NewHub()
	var got []Change
	sub := h.Subscribe("attendance", func(c Change) { got = append(got, c) })
	defer sub.Cancel()

	h.Publish(Change{Table: "attendance", Op: OpInsert})
	h.Publish(Change{Table: "training_posts", Op: OpInsert}) // outra tabela, não chega

	if len(got) != 1 {
		t.Fatalf("esperava 1 aviso, veio %d", len(got))
	}
	if got[0].Table != "attendance" || got[0].Op != OpInsert {
		t.Fatalf("aviso errado: %+v", got[0])
	}
}

func TestHub_CancelStopsDelivery(t *testing.T) {
	h := NewHub()
	n := 0
	sub := h.Subscribe("attendance", func(Change) { n++ })

	h.Publish(Change{Table: "attendance", Op: OpInsert})
	sub.Cancel()
	sub.Cancel() // idempotente
	h.Publish(Change{Table: "attendance", Op: OpInsert})

	if n != 1 {
		t.Fatalf("após Cancel não pode entregar; entregas=%d", n)
	}
}

func TestHub_MultipleSubscribers(t *testing.T) {
	h := NewHub()
	a, b := 0, 0
	s1 := h.Subscribe("comments", func(Change) { a++ })
	s2 := h.Subscribe("comments", func(Change) { b++ })
	defer s1.Cancel()
	defer s2.Cancel()

	h.Publish(Change{Table: "comments", Op: OpInsert})
	if a != 1 || b != 1 {
		t.Fatalf("todos os assinantes recebem: a=%d b=%d", a, b)
	}
}
