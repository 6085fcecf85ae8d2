package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/AzizovM-doder/Rent-A-Room/internal/app/config"
	"github.com/AzizovM-doder/Rent-A-Room/internal/listing/usecase"
	"github.com/AzizovM-doder/Rent-A-Room/internal/platform/logger"
)

const sendTimeout = 10 * time.Second

// Sink pushes events to a Telegram chat through the bot sendMessage endpoint.
// The payload is rendered as "Key: value" lines under an event header, which
// is the format the operators' chat has always received.
type Sink struct {
	apiBase string
	token   string
	chatID  string
	http    *http.Client
	log     logger.Logger
}

func NewSink(cfg config.TelegramConfig, log logger.Logger) (*Sink, error) {
	if cfg.BotToken == "" || cfg.ChatID == "" {
		return nil, fmt.Errorf("telegram bot token and chat id must be configured")
	}
	return &Sink{
		apiBase: "https://api.telegram.org",
		token:   cfg.BotToken,
		chatID:  cfg.ChatID,
		http:    &http.Client{Timeout: sendTimeout},
		log:     log,
	}, nil
}

func (s *Sink) Notify(ctx context.Context, event string, payload []usecase.Field) error {
	var b strings.Builder
	b.WriteString(header(event))
	for _, field := range payload {
		b.WriteString("\n")
		b.WriteString(field.Key)
		b.WriteString(": ")
		b.WriteString(field.Value)
	}

	body, err := json.Marshal(map[string]string{
		"chat_id": s.chatID,
		"text":    b.String(),
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.apiBase, s.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		s.log.Errorf("telegram notify failed: %v", err)
		return fmt.Errorf("telegram notify failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.log.Warnf("telegram rejected event %s: status %d", event, resp.StatusCode)
		return fmt.Errorf("telegram rejected event %s: status %d", event, resp.StatusCode)
	}
	return nil
}

func header(event string) string {
	switch event {
	case "post_request":
		return "New post request:"
	case "booking_request":
		return "New request:"
	default:
		return event + ":"
	}
}
