package service_test

import (
	"context"

	"github.com/niksmo/bloomora/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

type MockIdentityStorage struct {
	mock.Mock
}

func (m *MockIdentityStorage) LoadIdentity(ctx context.Context) (domain.Identity, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Identity), args.Error(1)
}

func (m *MockIdentityStorage) StoreIdentity(ctx context.Context, v domain.Identity) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockIdentityStorage) DeleteIdentity(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// memIdentityStorage imitates a durable entry that survives a restart.
type memIdentityStorage struct {
	entry *domain.Identity
}

func (s *memIdentityStorage) LoadIdentity(context.Context) (domain.Identity, error) {
	if s.entry == nil {
		return domain.Identity{}, errNoEntry
	}
	return *s.entry, nil
}

func (s *memIdentityStorage) StoreIdentity(_ context.Context, v domain.Identity) error {
	s.entry = &v
	return nil
}

func (s *memIdentityStorage) DeleteIdentity(context.Context) error {
	s.entry = nil
	return nil
}

type MockFederatedProvider struct {
	mock.Mock
}

func (m *MockFederatedProvider) SignIn(ctx context.Context) (domain.Identity, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Identity), args.Error(1)
}

type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) Charge(ctx context.Context, o domain.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

type MockOrderEventsProducer struct {
	mock.Mock
}

func (m *MockOrderEventsProducer) ProduceOrder(ctx context.Context, o domain.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

type MockSalesView struct {
	mock.Mock
}

func (m *MockSalesView) ReadSales(
	ctx context.Context, ids []string,
) ([]domain.ProductSales, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]domain.ProductSales), args.Error(1)
}
