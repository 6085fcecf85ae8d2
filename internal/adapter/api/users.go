package api

import (
	"context"
	"net/http"

	"github.com/AzizovM-doder/Rent-A-Room/internal/listing/domain"
)

// Users lists all registered users. Admin only; the backend rejects the call
// for everyone else.
func (c *Client) Users(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.doJSON(ctx, http.MethodGet, "/users", nil, &users, nil); err != nil {
		return nil, err
	}
	return users, nil
}

type AdminUserPatch struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	IsAdmin *bool  `json:"isAdmin,omitempty"`
}

func (c *Client) UpdateUser(ctx context.Context, id string, patch AdminUserPatch) (*domain.User, error) {
	var user domain.User
	if err := c.doJSON(ctx, http.MethodPatch, "/users/"+id, patch, &user, nil); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/users/"+id, nil, nil, &progress{
		loading: "Deleting...",
		success: "User deleted!",
	})
}
