package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/AzizovM-doder/Rent-A-Room/internal/listing/domain"
)

func (c *Client) SendMessage(ctx context.Context, msg domain.Message) (*domain.Message, error) {
	var sent domain.Message
	err := c.doJSON(ctx, http.MethodPost, "/messages", msg, &sent, &progress{
		loading: "Sending...",
		success: "Message sent!",
	})
	if err != nil {
		return nil, err
	}
	return &sent, nil
}

// Messages lists all received messages. Admin only.
func (c *Client) Messages(ctx context.Context) ([]domain.Message, error) {
	var msgs []domain.Message
	if err := c.doJSON(ctx, http.MethodGet, "/messages", nil, &msgs, nil); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (c *Client) UpdateMessageStatus(ctx context.Context, id string, status domain.MessageStatus) (*domain.Message, error) {
	payload := map[string]domain.MessageStatus{"status": status}
	var updated domain.Message
	err := c.doJSON(ctx, http.MethodPatch, "/messages/"+id, payload, &updated, &progress{
		loading: "Updating...",
		success: "Marked as " + strings.ToLower(string(status)) + "!",
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
