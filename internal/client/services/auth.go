// Package services contains application services for the workspace client:
// authentication against the remote worker API and chat room glue.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sujeetunbeatable/liorea-cli/internal/client/api"
	"github.com/sujeetunbeatable/liorea-cli/internal/client/repositories/metadata"
	"github.com/sujeetunbeatable/liorea-cli/internal/common"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: verify credentials against the remote auth API.
//   - Signup: create a new account; the caller still logs in afterwards.
//   - DeviceID: return this install's stable device id, creating it once.
//
// No password or token is kept in this layer; a successful login only
// establishes the display identity, which the Session persists.
type AuthService interface {
	Login(ctx context.Context, username string, password []byte) error
	Signup(ctx context.Context, username string, password []byte) error
	DeviceID(ctx context.Context) (string, error)
}

// authService is the concrete AuthService backed by the remote backend and
// the local metadata store.
type authService struct {
	backend api.AuthBackend
	meta    metadata.Repository
}

// NewAuthService constructs an AuthService bound to the given backend and
// metadata repository.
func NewAuthService(backend api.AuthBackend, meta metadata.Repository) AuthService {
	return &authService{backend: backend, meta: meta}
}

// Login verifies the credentials remotely. A rejection comes back as
// api.ErrRejected carrying the server's message; unreachable service as
// api.ErrUnavailable.
func (a *authService) Login(ctx context.Context, username string, password []byte) error {
	if username == "" {
		return errors.New("username must not be empty")
	}
	if err := a.backend.Login(ctx, username, string(password)); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	return nil
}

// Signup creates a new account remotely. Mirrors the web client: a
// successful signup does not log in, the user authenticates afterwards.
func (a *authService) Signup(ctx context.Context, username string, password []byte) error {
	if username == "" {
		return errors.New("username must not be empty")
	}
	if err := a.backend.Signup(ctx, username, string(password)); err != nil {
		return fmt.Errorf("signup failed: %w", err)
	}
	return nil
}

// DeviceID returns the install-scoped device id, generating and persisting
// one on first use.
func (a *authService) DeviceID(ctx context.Context) (string, error) {
	value, err := a.meta.Get(ctx, common.MetaKeyDeviceID)
	if err == nil && len(value) > 0 {
		return string(value), nil
	}
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return "", err
	}

	id := uuid.NewString()
	if err := a.meta.Set(ctx, common.MetaKeyDeviceID, []byte(id)); err != nil {
		return "", fmt.Errorf("failed to persist device id: %w", err)
	}
	return id, nil
}
