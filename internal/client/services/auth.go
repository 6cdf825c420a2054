// Package services contains application services for the worklog CLI. This
// file defines the authentication service, which owns the login state of the
// REPL.
package services

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/worklog/internal/client/client"
	"github.com/dmitrijs2005/worklog/internal/client/models"
	"github.com/dmitrijs2005/worklog/internal/common"
	"github.com/dmitrijs2005/worklog/internal/cryptox"
)

// AuthService logs the CLI in and out and remembers who is logged in.
type AuthService interface {
	Login(ctx context.Context, username string, password []byte) (models.Identity, error)
	Logout()
	Current() (models.Identity, bool)
	Ping(ctx context.Context) error
}

type authService struct {
	client client.Client

	mu       sync.RWMutex
	identity *models.Identity
}

// NewAuthService constructs an AuthService bound to the given API client.
func NewAuthService(client client.Client) AuthService {
	return &authService{client: client}
}

// Login authenticates against the server. The password slice is wiped
// before returning. A failed login keeps the previous session.
func (a *authService) Login(ctx context.Context, username string, password []byte) (models.Identity, error) {
	defer cryptox.WipeBytes(password)

	username = strings.TrimSpace(username)
	if username == "" || len(password) == 0 {
		return models.Identity{}, common.ErrAccessDenied
	}

	tok, err := a.client.Login(ctx, username, string(password))
	if err != nil {
		return models.Identity{}, err
	}

	id := tok.Identity()
	a.mu.Lock()
	a.identity = &id
	a.mu.Unlock()
	return id, nil
}

func (a *authService) Logout() {
	a.client.Logout()
	a.mu.Lock()
	a.identity = nil
	a.mu.Unlock()
}

// Current returns the logged-in identity, if any.
func (a *authService) Current() (models.Identity, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.identity == nil {
		return models.Identity{}, false
	}
	return *a.identity, true
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}
