package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/lovoo/goka"
	"github.com/niksmo/bloomora/internal/core/domain"
	"github.com/niksmo/bloomora/internal/core/port"
	"github.com/niksmo/bloomora/pkg/schema"
)

var _ port.SalesView = (*SalesView)(nil)

type viewGetter interface {
	Get(key string) (any, error)
	Recovered() bool
}

// A SalesView reads product sales totals from the sales group table.
type SalesView struct {
	opPrefix string
	gv       *goka.View
	getter   viewGetter
}

func NewSalesView(
	seedBrokers []string, group string,
) (*SalesView, error) {
	const op = "NewSalesView"

	gv, err := goka.NewView(
		seedBrokers,
		goka.GroupTable(goka.Group(group)),
		newSalesCodec(),
		withNonlogViewOpt(),
	)
	if err != nil {
		return nil, opErr(err, op)
	}

	return &SalesView{opPrefix: "SalesView", gv: gv, getter: gv}, nil
}

// Run runs the view until ctx is done.
//
// Blocks until the table is recovered or the view fails.
func (v *SalesView) Run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	const op = "Run"
	log := slog.With("op", makeOp(v.opPrefix, op))

	defer wg.Done()

	stopped := make(chan struct{})
	go func() {
		defer stopFn()
		defer close(stopped)
		if err := v.gv.Run(ctx); err != nil {
			log.Error("stopped", "err", err)
			return
		}
		log.Info("stopped")
	}()

	log.Info("preparing...")
	select {
	case <-ctx.Done():
	case <-stopped:
	case <-v.gv.WaitRunning():
		log.Info("running")
	}
}

// Close is a no-op; the view stops with its run context.
func (v *SalesView) Close() {
	slog.Info("view is closed", "op", makeOp(v.opPrefix, "Close"))
}

func (v *SalesView) ReadSales(
	ctx context.Context, productIDs []string,
) ([]domain.ProductSales, error) {
	const op = "ReadSales"

	if err := ctx.Err(); err != nil {
		return nil, opErr(err, v.opPrefix, op)
	}

	if !v.getter.Recovered() {
		return nil, opErr(ErrViewNotRecovered, v.opPrefix, op)
	}

	sales := make([]domain.ProductSales, 0, len(productIDs))
	for _, id := range productIDs {
		raw, err := v.getter.Get(id)
		if err != nil {
			return nil, opErr(err, v.opPrefix, op)
		}
		if raw == nil {
			sales = append(sales, domain.ProductSales{ProductID: id})
			continue
		}
		s, ok := raw.(schema.ProductSalesV1)
		if !ok {
			return nil, opErr(
				fmt.Errorf("%w: %T", ErrInvalidValueType, raw), v.opPrefix, op,
			)
		}
		sales = append(sales, salesFromSchemaV1(s))
	}
	return sales, nil
}
