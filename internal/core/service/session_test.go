package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/niksmo/bloomora/internal/core/domain"
	"github.com/niksmo/bloomora/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var googleIdentity = domain.Identity{
	Name:   "Alex Smith",
	Email:  "alex.smith@gmail.com",
	Avatar: "https://example.com/alex.png",
}

func TestSessionStore(t *testing.T) {
	t.Run("StartsSignedOut", func(t *testing.T) {
		s := service.NewSessionStore(
			t.Context(), new(memIdentityStorage), new(MockFederatedProvider),
		)
		assert.False(t, s.IsAuthenticated())
		_, err := s.RequireIdentity()
		assert.ErrorIs(t, err, service.ErrUnauthenticated)
	})

	t.Run("LoginSurvivesRestart", func(t *testing.T) {
		storage := new(memIdentityStorage)
		s := service.NewSessionStore(t.Context(), storage, new(MockFederatedProvider))

		identity, err := s.Login(t.Context(), "jane@example.com", "Jane")
		require.NoError(t, err)
		assert.Equal(t, domain.Identity{Name: "Jane", Email: "jane@example.com"}, identity)
		assert.True(t, s.IsAuthenticated())

		restarted := service.NewSessionStore(t.Context(), storage, new(MockFederatedProvider))
		got, ok := restarted.Identity()
		require.True(t, ok)
		assert.Equal(t, identity, got)
	})

	t.Run("LoginDefaultName", func(t *testing.T) {
		s := service.NewSessionStore(
			t.Context(), new(memIdentityStorage), new(MockFederatedProvider),
		)
		identity, err := s.Login(t.Context(), "jane@example.com", "")
		require.NoError(t, err)
		assert.Equal(t, service.DefaultVisitorName, identity.Name)
		assert.Empty(t, identity.Avatar)
		assert.False(t, identity.IsGoogle)
	})

	t.Run("LogoutSurvivesRestart", func(t *testing.T) {
		storage := new(memIdentityStorage)
		s := service.NewSessionStore(t.Context(), storage, new(MockFederatedProvider))
		_, err := s.Login(t.Context(), "jane@example.com", "Jane")
		require.NoError(t, err)

		redirect, err := s.Logout(t.Context())
		require.NoError(t, err)
		assert.Equal(t, service.SignInPath, redirect)
		assert.False(t, s.IsAuthenticated())

		restarted := service.NewSessionStore(t.Context(), storage, new(MockFederatedProvider))
		assert.False(t, restarted.IsAuthenticated())
	})

	t.Run("UnreadableEntryIsAbsent", func(t *testing.T) {
		storage := new(MockIdentityStorage)
		storage.On("LoadIdentity", mock.Anything).
			Return(domain.Identity{}, errors.New("malformed identity"))

		s := service.NewSessionStore(t.Context(), storage, new(MockFederatedProvider))
		assert.False(t, s.IsAuthenticated())
		storage.AssertExpectations(t)
	})

	t.Run("LoginStorageFailureKeepsIdentity", func(t *testing.T) {
		errStorage := errors.New("storage is down")
		storage := new(MockIdentityStorage)
		storage.On("LoadIdentity", mock.Anything).Return(domain.Identity{}, errNoEntry)
		storage.On("StoreIdentity", mock.Anything, mock.Anything).Return(errStorage)

		s := service.NewSessionStore(t.Context(), storage, new(MockFederatedProvider))
		_, err := s.Login(t.Context(), "jane@example.com", "Jane")
		assert.ErrorIs(t, err, errStorage)
		assert.True(t, s.IsAuthenticated())
	})

	t.Run("FederatedLogin", func(t *testing.T) {
		storage := new(memIdentityStorage)
		provider := new(MockFederatedProvider)
		provider.On("SignIn", mock.Anything).Return(googleIdentity, nil)

		s := service.NewSessionStore(t.Context(), storage, provider)
		identity, err := s.LoginWithFederatedProvider(t.Context()).Wait(t.Context())
		require.NoError(t, err)

		want := googleIdentity
		want.IsGoogle = true
		assert.Equal(t, want, identity)

		got, ok := s.Identity()
		require.True(t, ok)
		assert.Equal(t, want, got)

		restarted := service.NewSessionStore(t.Context(), storage, provider)
		got, ok = restarted.Identity()
		require.True(t, ok)
		assert.Equal(t, want, got)
	})

	t.Run("FederatedLoginCompletesWhenAbandoned", func(t *testing.T) {
		release := make(chan struct{})
		provider := new(MockFederatedProvider)
		provider.On("SignIn", mock.Anything).
			Run(func(mock.Arguments) { <-release }).
			Return(googleIdentity, nil)

		s := service.NewSessionStore(t.Context(), new(memIdentityStorage), provider)

		ctx, cancel := context.WithCancel(t.Context())
		tk := s.LoginWithFederatedProvider(ctx)
		cancel()

		_, err := tk.Wait(ctx)
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, s.IsAuthenticated())

		close(release)
		_, err = tk.Wait(t.Context())
		require.NoError(t, err)
		assert.True(t, s.IsAuthenticated())
	})

	t.Run("FederatedLoginFailure", func(t *testing.T) {
		errProvider := errors.New("provider unavailable")
		provider := new(MockFederatedProvider)
		provider.On("SignIn", mock.Anything).Return(domain.Identity{}, errProvider)

		s := service.NewSessionStore(t.Context(), new(memIdentityStorage), provider)
		_, err := s.LoginWithFederatedProvider(t.Context()).Wait(t.Context())
		assert.ErrorIs(t, err, errProvider)
		assert.False(t, s.IsAuthenticated())
	})
}
