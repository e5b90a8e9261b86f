package port

import (
	"context"
	"sync"

	"github.com/niksmo/bloomora/internal/core/domain"
)

type (
	runnerContextWg interface {
		Run(context.Context, context.CancelFunc, *sync.WaitGroup)
	}

	closer interface {
		Close()
	}
)

// IdentityStorage keeps the single persisted identity entry.
type IdentityStorage interface {
	LoadIdentity(context.Context) (domain.Identity, error)
	StoreIdentity(context.Context, domain.Identity) error
	DeleteIdentity(context.Context) error
}

type FederatedProvider interface {
	SignIn(context.Context) (domain.Identity, error)
}

type PaymentGateway interface {
	Charge(context.Context, domain.Order) error
}

type OrderEventsProducer interface {
	ProduceOrder(context.Context, domain.Order) error
}

type SalesReader interface {
	ReadSales(ctx context.Context, productIDs []string) ([]domain.ProductSales, error)
}

type SalesProcessor interface {
	runnerContextWg
	closer
}

type SalesView interface {
	runnerContextWg
	closer
	SalesReader
}
