package api

import (
	"context"
	"net/http"

	"github.com/AzizovM-doder/Rent-A-Room/internal/listing/domain"
)

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is what /auth/register and /auth/login return.
type AuthResponse struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

func (c *Client) Register(ctx context.Context, in RegisterInput) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", in, &resp, nil); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Login(ctx context.Context, in LoginInput) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", in, &resp, nil); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", nil, &user, nil); err != nil {
		return nil, err
	}
	return &user, nil
}

type UserPatch struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

func (c *Client) UpdateMe(ctx context.Context, patch UserPatch) (*domain.User, error) {
	var user domain.User
	if err := c.doJSON(ctx, http.MethodPatch, "/auth/me", patch, &user, nil); err != nil {
		return nil, err
	}
	return &user, nil
}
