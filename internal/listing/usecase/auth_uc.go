package usecase

import (
	"context"
	"fmt"

	"github.com/AzizovM-doder/Rent-A-Room/internal/adapter/api"
	"github.com/AzizovM-doder/Rent-A-Room/internal/listing/domain"
	"github.com/AzizovM-doder/Rent-A-Room/internal/platform/logger"
)

// AuthAPI is the auth slice of the remote client.
type AuthAPI interface {
	Register(ctx context.Context, in api.RegisterInput) (*api.AuthResponse, error)
	Login(ctx context.Context, in api.LoginInput) (*api.AuthResponse, error)
	Me(ctx context.Context) (*domain.User, error)
}

// SessionWriter persists the outcome of auth operations.
type SessionWriter interface {
	Save(ctx context.Context, user domain.User, token string) error
	Clear(ctx context.Context) error
}

// AuthUsecase keeps the persisted session consistent with the backend's view
// of who is logged in.
type AuthUsecase struct {
	api     AuthAPI
	session SessionWriter
	log     logger.Logger
}

func NewAuthUsecase(authAPI AuthAPI, session SessionWriter, log logger.Logger) *AuthUsecase {
	return &AuthUsecase{api: authAPI, session: session, log: log}
}

func (uc *AuthUsecase) Register(ctx context.Context, in api.RegisterInput) (*domain.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", domain.ErrValidation)
	}
	resp, err := uc.api.Register(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := uc.session.Save(ctx, resp.User, resp.Token); err != nil {
		return nil, fmt.Errorf("registered but failed to persist session: %w", err)
	}
	uc.log.Infof("registered and logged in as %s", resp.User.Email)
	return &resp.User, nil
}

func (uc *AuthUsecase) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}
	resp, err := uc.api.Login(ctx, api.LoginInput{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	if err := uc.session.Save(ctx, resp.User, resp.Token); err != nil {
		return nil, fmt.Errorf("logged in but failed to persist session: %w", err)
	}
	uc.log.Infof("logged in as %s", resp.User.Email)
	return &resp.User, nil
}

// Refresh re-reads the current user from the backend and re-persists the
// snapshot, keeping local state consistent with server state.
func (uc *AuthUsecase) Refresh(ctx context.Context, token string) (*domain.User, error) {
	user, err := uc.api.Me(ctx)
	if err != nil {
		return nil, err
	}
	if err := uc.session.Save(ctx, *user, token); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *AuthUsecase) Logout(ctx context.Context) error {
	return uc.session.Clear(ctx)
}
