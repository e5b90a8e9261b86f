package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/niksmo/bloomora/internal/core/domain"
	"github.com/niksmo/bloomora/internal/core/port"
	"github.com/niksmo/bloomora/pkg/task"
)

const (
	DefaultVisitorName = "Plant Lover"
	SignInPath         = "/login"
)

// A SessionStore holds the identity of the visitor and keeps
// it in the identity storage across restarts.
type SessionStore struct {
	mu       sync.RWMutex
	identity *domain.Identity
	storage  port.IdentityStorage
	provider port.FederatedProvider
}

// NewSessionStore rehydrates the identity from storage.
//
// A missing, unreadable or malformed entry leaves the session signed out.
func NewSessionStore(
	ctx context.Context,
	storage port.IdentityStorage,
	provider port.FederatedProvider,
) *SessionStore {
	const op = "NewSessionStore"
	log := slog.With("op", op)

	s := &SessionStore{storage: storage, provider: provider}

	identity, err := storage.LoadIdentity(ctx)
	if err != nil {
		log.Warn("no stored identity, starting signed out", "err", err)
		return s
	}

	s.identity = &identity
	log.Info("identity restored", "email", identity.Email)
	return s
}

// Login signs the visitor in with a local account. An empty name
// falls back to [DefaultVisitorName].
//
// The identity is set even when persisting it fails.
func (s *SessionStore) Login(
	ctx context.Context, email, name string,
) (domain.Identity, error) {
	const op = "SessionStore.Login"

	if name == "" {
		name = DefaultVisitorName
	}
	identity := domain.Identity{Name: name, Email: email}

	if err := s.setIdentity(ctx, identity); err != nil {
		return identity, fmt.Errorf("%s: %w", op, err)
	}
	return identity, nil
}

// LoginWithFederatedProvider signs in through the federated provider.
//
// The sign-in runs detached from ctx cancellation: an abandoned task
// still completes and sets the identity.
func (s *SessionStore) LoginWithFederatedProvider(
	ctx context.Context,
) *task.Task[domain.Identity] {
	const op = "SessionStore.LoginWithFederatedProvider"

	return task.Go(ctx, func(ctx context.Context) (domain.Identity, error) {
		log := slog.With("op", op)

		identity, err := s.provider.SignIn(ctx)
		if err != nil {
			return domain.Identity{}, fmt.Errorf("%s: %w", op, err)
		}
		identity.IsGoogle = true

		if err := s.setIdentity(ctx, identity); err != nil {
			log.Error("failed to persist identity", "err", err)
			return identity, fmt.Errorf("%s: %w", op, err)
		}

		log.Info("signed in", "email", identity.Email)
		return identity, nil
	})
}

// Logout clears the identity and its stored entry and returns the
// sign-in destination.
func (s *SessionStore) Logout(ctx context.Context) (string, error) {
	const op = "SessionStore.Logout"

	s.mu.Lock()
	s.identity = nil
	s.mu.Unlock()

	if err := s.storage.DeleteIdentity(ctx); err != nil {
		return SignInPath, fmt.Errorf("%s: %w", op, err)
	}
	return SignInPath, nil
}

func (s *SessionStore) Identity() (domain.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return domain.Identity{}, false
	}
	return *s.identity, true
}

func (s *SessionStore) IsAuthenticated() bool {
	_, ok := s.Identity()
	return ok
}

// RequireIdentity returns [ErrUnauthenticated] for signed out visitors.
func (s *SessionStore) RequireIdentity() (domain.Identity, error) {
	identity, ok := s.Identity()
	if !ok {
		return domain.Identity{}, ErrUnauthenticated
	}
	return identity, nil
}

func (s *SessionStore) setIdentity(
	ctx context.Context, identity domain.Identity,
) error {
	s.mu.Lock()
	s.identity = &identity
	s.mu.Unlock()

	return s.storage.StoreIdentity(ctx, identity)
}
