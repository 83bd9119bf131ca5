// Package schedule interpreta o texto livre de horário das turmas
// ("Segunda e Quarta, 19h-20h") para decidir janelas de check-in.
//
// Limitação herdada do formato: só o PRIMEIRO token de hora é considerado.
// Turmas com mais de uma faixa de horário no mesmo dia não são suportadas;
// a segunda faixa é ignorada.
package schedule

import (
	"regexp"
	"strings"
	"time"
)

// Nomes dos dias em pt-BR, com e sem acento. O texto é digitado à mão.
var weekdayNames = map[time.Weekday][]string{
	time.Sunday:    {"domingo"},
	time.Monday:    {"segunda"},
	time.Tuesday:   {"terça", "terca"},
	time.Wednesday: {"quarta"},
	time.Thursday:  {"quinta"},
	time.Friday:    {"sexta"},
	time.Saturday:  {"sábado", "sabado"},
}

var hourRe = regexp.MustCompile(`(\d{1,2})h`)

// Window é o resultado da interpretação do texto para um dado instante.
// HasStart=false com MatchedToday=true significa: é dia de treino mas a hora
// não pôde ser extraída. O chamador deve FALHAR ABERTO (liberar o check-in).
type Window struct {
	MatchedToday bool
	StartHour    int
	HasStart     bool
}

// ParseWindow nunca retorna erro: texto que não casa vira simplesmente
// MatchedToday=false. O instante `now` já deve estar no fuso de referência.
func ParseWindow(text string, now time.Time) Window {
	lower := strings.ToLower(text)

	matched := false
	for _, name := range weekdayNames[now.Weekday()] {
		if strings.Contains(lower, name) {
			matched = true
			break
		}
	}
	if !matched {
		return Window{}
	}

	m := hourRe.FindStringSubmatch(lower)
	if m == nil {
		return Window{MatchedToday: true}
	}
	h := 0
	for _, c := range m[1] {
		h = h*10 + int(c-'0')
	}
	if h > 23 {
		return Window{MatchedToday: true}
	}
	return Window{MatchedToday: true, StartHour: h, HasStart: true}
}

// OpensAt calcula o início da janela de check-in no dia de `now`:
// 30 minutos antes da hora cheia anterior ao início da aula, ou seja
// (hora-1):30. Aula à 0h não gera hora negativa: a janela abre às 23:30
// do mesmo dia.
func (w Window) OpensAt(now time.Time) time.Time {
	h := w.StartHour - 1
	if w.StartHour == 0 {
		h = 23
	}
	y, m, d := now.Date()
	return time.Date(y, m, d, h, 30, 0, 0, now.Location())
}

// ClosesAt: a janela sempre fecha às 23:59:59 do mesmo dia,
// independente do fim da aula.
func (w Window) ClosesAt(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), now.Location())
}

// Weekdays devolve os dias da semana citados no texto, sem repetição,
// na ordem domingo..sábado. Usado para derivar a meta semanal padrão.
func Weekdays(text string) []time.Weekday {
	lower := strings.ToLower(text)
	var out []time.Weekday
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		for _, name := range weekdayNames[wd] {
			if strings.Contains(lower, name) {
				out = append(out, wd)
				break
			}
		}
	}
	return out
}
