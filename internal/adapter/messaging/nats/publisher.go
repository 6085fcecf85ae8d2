package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/AzizovM-doder/Rent-A-Room/internal/app/config"
	"github.com/AzizovM-doder/Rent-A-Room/internal/listing/usecase"
)

const (
	connectWait   = 5 * time.Second
	maxReconnects = 5
	reconnectWait = 2 * time.Second

	subjectPrefix = "rentaroom.events."
)

type Publisher struct {
	conn *nats.Conn
}

func NewPublisher(cfg config.NATSConfig) (*Publisher, error) {
	opts := []nats.Option{
		nats.Name("Rent-A-Room Client Publisher"),
		nats.Timeout(connectWait),
		nats.MaxReconnects(maxReconnects),
		nats.ReconnectWait(reconnectWait),
	}

	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", cfg.URL, err)
	}
	return &Publisher{conn: conn}, nil
}

// Notify publishes the event as a JSON object on rentaroom.events.<event>.
func (p *Publisher) Notify(ctx context.Context, event string, payload []usecase.Field) error {
	body := make(map[string]string, len(payload))
	for _, field := range payload {
		body[field.Key] = field.Value
	}

	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event, err)
	}
	if err := p.conn.Publish(subjectPrefix+event, data); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event, err)
	}
	return nil
}

func (p *Publisher) Close() {
	p.conn.Close()
}
