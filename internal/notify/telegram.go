// Package notify envia alertas administrativos para o chat do Telegram da
// academia. Sem token configurado, tudo vira no-op.
package notify

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/tatamelab/tatame/internal/observability"
)

type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	if token == "" || chatID == 0 {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Telegram{bot: bot, chatID: chatID}, nil
}

func (t *Telegram) EnrollmentRequested(studentName, className string) {
	t.send(fmt.Sprintf("📥 Nova solicitação de matrícula: %s → %s", studentName, className))
}

func (t *Telegram) PaymentsOverdue(names []string) {
	if len(names) == 0 {
		return
	}
	t.send(fmt.Sprintf("💰 Mensalidades atrasadas (%d): %s", len(names), strings.Join(names, ", ")))
}

func (t *Telegram) send(text string) {
	if t == nil || t.bot == nil {
		return
	}
	_, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, text))
	if isSystemErr(err) {
		observability.CaptureErr(err)
	}
}

// Sistêmicos: 5xx, 429, timeout. Validações comuns do Telegram não vão para
// o Sentry.
func isSystemErr(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	if strings.Contains(s, "429") || strings.Contains(s, "502") || strings.Contains(s, "503") || strings.Contains(s, "timeout") {
		return true
	}
	return false
}
