// Package auth is the local identity provider behind the login wall:
// accounts live in DuckDB, passwords are bcrypt hashed, and one session is
// held per process.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/healthtoday/healthtoday/internal/duckdb"
	"github.com/healthtoday/healthtoday/internal/model"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const minProviderPasswordLen = 6

// UserStore persists accounts. *duckdb.Store satisfies it.
type UserStore interface {
	CreateUser(ctx context.Context, u model.User) error
	UserByEmail(ctx context.Context, email string) (model.User, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}

// Service implements model.Authenticator.
type Service struct {
	store UserStore
	log   zerolog.Logger
	cost  int
	now   func() time.Time

	mu      sync.RWMutex
	current *model.User
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l zerolog.Logger) Option { return func(s *Service) { s.log = l } }

// WithBcryptCost overrides the password hashing cost.
func WithBcryptCost(cost int) Option { return func(s *Service) { s.cost = cost } }

// WithClock overrides the time source used for created/last-login stamps.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// NewService returns a Service backed by store.
func NewService(store UserStore, opts ...Option) *Service {
	s := &Service{
		store: store,
		log:   zerolog.Nop(),
		cost:  bcrypt.DefaultCost,
		now:   time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

var _ model.Authenticator = (*Service)(nil)

// SignUp creates an account and signs it in.
func (s *Service) SignUp(ctx context.Context, username, email, password string) (model.User, error) {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return model.User{}, ErrInvalidEmail
	}
	if len(password) < minProviderPasswordLen {
		return model.User{}, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return model.User{}, fmt.Errorf("auth: hash password: %w", err)
	}

	now := s.now()
	u := model.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		LastLoginAt:  now,
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		if errors.Is(err, duckdb.ErrDuplicate) {
			return model.User{}, ErrEmailInUse
		}
		return model.User{}, fmt.Errorf("auth: create user: %w", err)
	}
	if err := s.store.TouchLastLogin(ctx, u.ID, now); err != nil {
		s.log.Warn().Err(err).Str("user", u.ID).Msg("record last login")
	}

	s.setCurrent(u)
	s.log.Info().Str("user", u.ID).Msg("account created")
	return u, nil
}

// SignIn verifies email and password and makes the account current.
func (s *Service) SignIn(ctx context.Context, email, password string) (model.User, error) {
	email = normalizeEmail(email)
	u, err := s.store.UserByEmail(ctx, email)
	if errors.Is(err, duckdb.ErrNotFound) {
		return model.User{}, ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("auth: lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return model.User{}, ErrInvalidCredentials
		}
		return model.User{}, fmt.Errorf("auth: compare password: %w", err)
	}

	now := s.now()
	if err := s.store.TouchLastLogin(ctx, u.ID, now); err != nil {
		s.log.Warn().Err(err).Str("user", u.ID).Msg("record last login")
	} else {
		u.LastLoginAt = now
	}

	s.setCurrent(u)
	s.log.Info().Str("user", u.ID).Msg("signed in")
	return u, nil
}

// SignOut ends the current session.
func (s *Service) SignOut(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ErrNotSignedIn
	}
	s.log.Info().Str("user", s.current.ID).Msg("signed out")
	s.current = nil
	return nil
}

// Current returns the signed-in account, if any.
func (s *Service) Current() (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return model.User{}, false
	}
	return *s.current, true
}

func (s *Service) setCurrent(u model.User) {
	s.mu.Lock()
	s.current = &u
	s.mu.Unlock()
}
