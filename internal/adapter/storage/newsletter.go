package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/AzizovM-doder/Rent-A-Room/internal/adapter/email"
	"github.com/AzizovM-doder/Rent-A-Room/internal/listing/domain"
	"github.com/AzizovM-doder/Rent-A-Room/internal/platform/logger"
)

// Newsletter keeps the subscriber email list. A greeting goes out when an SMTP
// sender is configured; subscription itself never depends on the mail sending.
type Newsletter struct {
	kv     KV
	sender email.Sender // optional
	log    logger.Logger
}

func NewNewsletter(kv KV, sender email.Sender, log logger.Logger) *Newsletter {
	return &Newsletter{kv: kv, sender: sender, log: log}
}

func (n *Newsletter) All(ctx context.Context) []string {
	raw, err := n.kv.Get(ctx, KeySubscribers)
	if err != nil {
		return nil
	}
	var emails []string
	if err := json.Unmarshal(raw, &emails); err != nil {
		n.log.Warnf("stored subscriber list is malformed, ignoring: %v", err)
		return nil
	}
	return emails
}

func (n *Newsletter) Subscribe(ctx context.Context, address string) error {
	address = strings.TrimSpace(strings.ToLower(address))
	if address == "" || !strings.Contains(address, "@") {
		return fmt.Errorf("%w: valid email is required", domain.ErrValidation)
	}

	emails := n.All(ctx)
	for _, existing := range emails {
		if existing == address {
			return nil
		}
	}

	raw, err := json.Marshal(append(emails, address))
	if err != nil {
		return err
	}
	if err := n.kv.Set(ctx, KeySubscribers, raw); err != nil {
		return err
	}

	if n.sender != nil {
		if err := n.sender.Send(ctx, address, "Welcome to Rent-A-Room", "Thanks for subscribing! We will let you know about new listings."); err != nil {
			n.log.Warnf("greeting email to %s failed: %v", address, err)
		}
	}
	return nil
}
