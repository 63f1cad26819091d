// Package notify delivers the operator-channel message sent when a contract
// is created. Delivery is strictly best effort: a failure is logged and never
// propagated, so it can never fail or roll back contract creation.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/Umidjon1990/Shartnoma/internal/storage"
)

// Notifier announces created contracts.
type Notifier interface {
	ContractCreated(ctx context.Context, c storage.Contract)
}

// Telegram posts a Markdown message to a chat via the Bot API.
type Telegram struct {
	Token  string
	ChatID string
	// APIBase overrides the Bot API endpoint, for tests.
	APIBase string
	Client  *http.Client
}

var _ Notifier = (*Telegram)(nil)

// NewTelegram creates a notifier. With an empty token or chat id every send
// is skipped.
func NewTelegram(token, chatID string) *Telegram {
	return &Telegram{
		Token:   token,
		ChatID:  chatID,
		APIBase: "https://api.telegram.org",
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Message renders the operator message for a created contract.
func Message(c storage.Contract) string {
	return fmt.Sprintf(
		"🎓 *Yangi Shartnoma Tuzildi!*\n\n"+
			"📝 Shartnoma №: `%s`\n"+
			"👤 O'quvchi: *%s*\n"+
			"📞 Telefon: %s\n"+
			"🎂 Yosh: %s\n"+
			"📚 Kurs: *%s*\n"+
			"💻 Format: %s\n"+
			"📅 Sana: %s\n\n"+
			"✅ Status: Imzolangan",
		c.ContractNumber, c.StudentName, c.Phone, c.Age, c.Course, c.Format,
		c.CreatedAt.Format("02.01.2006 15:04"),
	)
}

// ContractCreated sends the creation message. Errors are logged only.
func (t *Telegram) ContractCreated(ctx context.Context, c storage.Contract) {
	if t.Token == "" || t.ChatID == "" {
		log.Print("[INFO] telegram not configured, skipping notification")
		return
	}

	payload, err := json.Marshal(map[string]string{
		"chat_id":    t.ChatID,
		"text":       Message(c),
		"parse_mode": "Markdown",
	})
	if err != nil {
		log.Printf("[ERROR] telegram: encoding notification: %v", err)
		return
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.APIBase, t.Token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		log.Printf("[ERROR] telegram: building request: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := t.Client.Do(req)
	if err != nil {
		log.Printf("[ERROR] telegram: sending notification: %v", err)
		return
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		log.Printf("[ERROR] telegram: notification failed: %s: %s", res.Status, body)
		return
	}
	log.Printf("[INFO] telegram: notification sent for contract %s", c.ContractNumber)
}
