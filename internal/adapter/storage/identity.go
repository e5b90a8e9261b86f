package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/niksmo/bloomora/internal/core/domain"
	"github.com/niksmo/bloomora/internal/core/port"
)

var _ port.IdentityStorage = (*IdentityRepository)(nil)

type kvStorage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type identityRecord struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar,omitempty"`
	IsGoogle bool   `json:"isGoogle,omitempty"`
}

// An IdentityRepository keeps the identity as JSON under a single key.
type IdentityRepository struct {
	kv  kvStorage
	key string
}

func NewIdentityRepository(kv kvStorage, key string) IdentityRepository {
	return IdentityRepository{kv, key}
}

// LoadIdentity returns [ErrNotFound] for a missing entry and
// [ErrMalformed] for an entry that is not an identity.
func (r IdentityRepository) LoadIdentity(ctx context.Context) (domain.Identity, error) {
	const op = "IdentityRepository.LoadIdentity"

	data, err := r.kv.Get(ctx, r.key)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%s: %w", op, err)
	}

	var v identityRecord
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return domain.Identity{}, fmt.Errorf("%s: %w: %w", op, ErrMalformed, err)
	}
	if v.Name == "" && v.Email == "" {
		return domain.Identity{}, fmt.Errorf("%s: %w: empty identity", op, ErrMalformed)
	}

	return domain.Identity{
		Name:     v.Name,
		Email:    v.Email,
		Avatar:   v.Avatar,
		IsGoogle: v.IsGoogle,
	}, nil
}

func (r IdentityRepository) StoreIdentity(
	ctx context.Context, identity domain.Identity,
) error {
	const op = "IdentityRepository.StoreIdentity"

	data, err := json.Marshal(identityRecord{
		Name:     identity.Name,
		Email:    identity.Email,
		Avatar:   identity.Avatar,
		IsGoogle: identity.IsGoogle,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := r.kv.Set(ctx, r.key, string(data)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r IdentityRepository) DeleteIdentity(ctx context.Context) error {
	const op = "IdentityRepository.DeleteIdentity"

	if err := r.kv.Delete(ctx, r.key); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
