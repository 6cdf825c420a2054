// Package services contains server-side business logic. UserService handles
// authentication, token issuing and the admin user screens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/worklog/internal/common"
	"github.com/dmitrijs2005/worklog/internal/cryptox"
	"github.com/dmitrijs2005/worklog/internal/dbx"
	"github.com/dmitrijs2005/worklog/internal/logging"
	"github.com/dmitrijs2005/worklog/internal/server/access"
	"github.com/dmitrijs2005/worklog/internal/server/auth"
	"github.com/dmitrijs2005/worklog/internal/server/config"
	"github.com/dmitrijs2005/worklog/internal/server/metrics"
	"github.com/dmitrijs2005/worklog/internal/server/models"
	"github.com/dmitrijs2005/worklog/internal/server/repositories/repomanager"
)

// Token is a signed access token and the identity it carries.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
	Identity    access.Identity
}

type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	logger                      logging.Logger
	metrics                     *metrics.Metrics
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	seedUsername                string
	seedPassword                string
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger, mx *metrics.Metrics) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		logger:                      logger.With("module", "users"),
		metrics:                     mx,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		seedUsername:                cfg.SeedAdminUsername,
		seedPassword:                cfg.SeedAdminPassword,
	}
}

// Authenticate checks a username/password pair and returns the stored
// identity. Unknown users and wrong passwords both yield
// common.ErrAccessDenied; the distinction is only logged.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (access.Identity, error) {
	user, err := s.repomanager.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Warn(ctx, "login denied", "username", username, "reason", "unknown user")
			return access.Identity{}, common.ErrAccessDenied
		}
		return access.Identity{}, fmt.Errorf("authenticate: %w", err)
	}

	if !cryptox.CheckDigest(user.PasswordDigest, password) {
		s.logger.Warn(ctx, "login denied", "username", username, "reason", "wrong password")
		return access.Identity{}, common.ErrAccessDenied
	}

	role, err := access.ParseRole(user.Role)
	if err != nil {
		s.logger.Error(ctx, "stored role is invalid", "username", username, "role", user.Role)
		return access.Identity{}, common.ErrAccessDenied
	}

	return access.Identity{Username: user.Username, Role: role}, nil
}

// Login authenticates and issues an access token.
func (s *UserService) Login(ctx context.Context, username, password string) (*Token, error) {
	id, err := s.Authenticate(ctx, username, password)
	if err != nil {
		s.metrics.LoginFailed()
		return nil, err
	}

	token, expiresAt, err := auth.GenerateToken(id, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	s.metrics.LoginSucceeded()
	s.logger.Info(ctx, "login", "username", id.Username, "role", id.Role)
	return &Token{AccessToken: token, ExpiresAt: expiresAt, Identity: id}, nil
}

// Identify verifies an access token.
func (s *UserService) Identify(token string) (access.Identity, error) {
	return auth.ParseToken(token, s.jwtSecret)
}

// Register creates a user with a bcrypt digest of password. A taken
// username yields common.ErrDuplicateUser.
func (s *UserService) Register(ctx context.Context, username, password, role string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", common.ErrValidation)
	}
	r, err := access.ParseRole(role)
	if err != nil {
		return nil, err
	}

	digest, err := cryptox.MakeDigest(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{Username: username, PasswordDigest: digest, Role: string(r)}
	if err := s.repomanager.Users(s.db).Create(ctx, user); err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "username", username, "role", r)
	return user, nil
}

// Remove deletes a user. The seed administrator can never be removed.
func (s *UserService) Remove(ctx context.Context, username string) error {
	if username == s.seedUsername {
		return common.ErrProtectedAccount
	}
	if err := s.repomanager.Users(s.db).Delete(ctx, username); err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	s.logger.Info(ctx, "user removed", "username", username)
	return nil
}

// List returns every user ordered by username. Digests are not included.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return users, nil
}

// EnsureSeedAdmin creates the seed administrator when the users table is
// empty and reports whether it did.
func (s *UserService) EnsureSeedAdmin(ctx context.Context) (bool, error) {
	digest, err := cryptox.MakeDigest(s.seedPassword)
	if err != nil {
		return false, fmt.Errorf("error hashing password: %w", err)
	}

	seeded := false
	err = dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)
		n, err := repo.Count(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		if err := repo.Create(ctx, &models.User{Username: s.seedUsername, PasswordDigest: digest, Role: string(access.RoleAdmin)}); err != nil {
			return err
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("error seeding admin: %w", err)
	}

	if seeded {
		s.logger.Warn(ctx, "seed admin created with default password", "username", s.seedUsername)
	}
	return seeded, nil
}
