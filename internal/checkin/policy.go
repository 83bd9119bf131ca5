// Package checkin decide se um aluno pode registrar presença agora e
// persiste o registro. A decisão é uma função pura de (horário da turma, now);
// qualquer texto que não dá para interpretar libera o check-in (fail-open):
// o custo de negar presença a um aluno que está no tatame é maior do que o
// de aceitar um check-in fora de hora.
package checkin

import (
	"fmt"
	"time"

	"github.com/tatamelab/tatame/internal/schedule"
)

type Reason string

const (
	ReasonOK       Reason = "ok"
	ReasonWrongDay Reason = "wrong_day"
	ReasonTooEarly Reason = "too_early"
	ReasonClosed   Reason = "closed"
	ReasonFailOpen Reason = "fail_open"
)

type Decision struct {
	Available bool
	Reason    Reason
	Message   string
	OpensAt   *time.Time // só quando a janela é conhecida e ainda não abriu
}

// Availability nunca retorna erro e é determinística para (text, now) fixos.
// `now` já deve estar no fuso de referência da academia.
func Availability(text string, now time.Time) Decision {
	w := schedule.ParseWindow(text, now)

	if !w.MatchedToday {
		return Decision{
			Reason:  ReasonWrongDay,
			Message: "Check-in disponível apenas nos dias de treino da sua turma.",
		}
	}

	if !w.HasStart {
		// dia de treino, hora desconhecida: libera
		return Decision{
			Available: true,
			Reason:    ReasonFailOpen,
			Message:   "Check-in liberado.",
		}
	}

	open := w.OpensAt(now)
	if now.Before(open) {
		return Decision{
			Reason:  ReasonTooEarly,
			Message: fmt.Sprintf("Check-in abre às %s.", open.Format("15:04")),
			OpensAt: &open,
		}
	}
	if now.After(w.ClosesAt(now)) {
		return Decision{
			Reason:  ReasonClosed,
			Message: "Check-in encerrado por hoje.",
		}
	}
	return Decision{
		Available: true,
		Reason:    ReasonOK,
		Message:   "Bom treino! Check-in liberado.",
	}
}
