package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AzizovM-doder/Rent-A-Room/internal/listing/domain"
	"github.com/AzizovM-doder/Rent-A-Room/internal/platform/logger"
)

// Session keeps the auth token and the current-user snapshot. The admin marker
// is a duplicate of the snapshot, present only for admin users; the web client
// stored it that way and the admin pages key off its presence.
type Session struct {
	kv  KV
	log logger.Logger
}

func NewSession(kv KV, log logger.Logger) *Session {
	return &Session{kv: kv, log: log}
}

func (s *Session) Save(ctx context.Context, user domain.User, token string) error {
	raw, err := json.Marshal(token)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, KeyToken, raw); err != nil {
		return err
	}

	snapshot, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, KeyUser, snapshot); err != nil {
		return err
	}

	if user.IsAdmin {
		return s.kv.Set(ctx, KeyAdmin, snapshot)
	}
	return s.kv.Delete(ctx, KeyAdmin)
}

func (s *Session) Clear(ctx context.Context) error {
	for _, key := range []string{KeyToken, KeyUser, KeyAdmin} {
		if err := s.kv.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// Token returns the stored bearer token, or "" when absent. Expired JWTs are
// treated as absent so a stale session does not keep sending a dead token.
func (s *Session) Token(ctx context.Context) string {
	raw, err := s.kv.Get(ctx, KeyToken)
	if err != nil {
		return ""
	}
	var token string
	if err := json.Unmarshal(raw, &token); err != nil {
		// Старый формат хранил токен как сырую строку.
		token = string(raw)
	}
	if token == "" {
		return ""
	}
	if expired(token) {
		s.log.Debug("stored token is expired, treating session as logged out")
		return ""
	}
	return token
}

func (s *Session) IsAuthenticated(ctx context.Context) bool {
	return s.Token(ctx) != ""
}

// CurrentUser returns the persisted user snapshot. Malformed or absent data
// yields (nil, false), never an error surface.
func (s *Session) CurrentUser(ctx context.Context) (*domain.User, bool) {
	raw, err := s.kv.Get(ctx, KeyUser)
	if err != nil {
		return nil, false
	}
	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		s.log.Warnf("stored user snapshot is malformed, ignoring: %v", err)
		return nil, false
	}
	return &user, true
}

func (s *Session) IsAdmin(ctx context.Context) bool {
	_, err := s.kv.Get(ctx, KeyAdmin)
	return err == nil
}

// expired reports whether token is a JWT with an exp claim in the past. Tokens
// that are not JWTs (or carry no exp) are assumed live; the backend has the
// final word either way.
func expired(token string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
