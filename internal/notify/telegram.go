// Package notify pushes operational events to the admin's Telegram chat.
// Delivery is best effort: failures are logged and never surfaced to the
// operation that triggered the notification.
package notify

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"goalbet/pkg/clients"
)

// Event classes map to the message prefix shown in the admin chat.
const (
	EventDeposit  = "deposit"
	EventWithdraw = "withdraw"
	EventBan      = "ban"
	EventGame     = "game"
)

type Notifier interface {
	Notify(event, message string)
}

const telegramAPI = "https://api.telegram.org"

type Telegram struct {
	client clients.HTTPClientI
	token  string
	chatID string
}

func NewTelegram(token, chatID string) *Telegram {
	return &Telegram{
		client: clients.NewHTTPClient(),
		token:  token,
		chatID: chatID,
	}
}

// SetClient swaps the transport, for tests.
func (t *Telegram) SetClient(client clients.HTTPClientI) {
	t.client = client
}

func prefixFor(event string) string {
	switch event {
	case EventDeposit:
		return "\U0001F4B0"
	case EventWithdraw:
		return "\U0001F4B8"
	case EventBan:
		return "\U0001F6AB"
	case EventGame:
		return "\U0001F3AE"
	}
	return "\U0001F4E2"
}

// Notify sends the message in a background goroutine so callers never
// block on Telegram.
func (t *Telegram) Notify(event, message string) {
	go t.send(event, message)
}

func (t *Telegram) send(event, message string) {
	payload, err := json.Marshal(map[string]string{
		"chat_id":    t.chatID,
		"text":       fmt.Sprintf("%s %s", prefixFor(event), message),
		"parse_mode": "Markdown",
	})
	if err != nil {
		zap.L().Error("failed to encode notification", zap.Error(err))
		return
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", telegramAPI, t.token)
	headers := http.Header{"Content-Type": []string{"application/json"}}
	status, _, err := t.client.Post(url, headers, payload)
	if err != nil {
		zap.L().Warn("failed to send notification", zap.String("event", event), zap.Error(err))
		return
	}
	if status != http.StatusOK {
		zap.L().Warn("notification rejected", zap.String("event", event), zap.Int("status", status))
	}
}

// Noop discards every notification; used when no bot token is configured.
type Noop struct{}

func (Noop) Notify(string, string) {}
