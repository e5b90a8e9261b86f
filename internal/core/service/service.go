package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/niksmo/bloomora/internal/core/domain"
	"github.com/niksmo/bloomora/internal/core/port"
)

// Analytics runs the sales stream components and serves the admin report.
//
// A zero Analytics has analytics disabled: Run and Close do nothing and
// the report is empty.
type Analytics struct {
	catalog        Catalog
	salesProcessor port.SalesProcessor
	salesView      port.SalesView
}

func NewAnalytics(
	catalog Catalog,
	salesProcessor port.SalesProcessor,
	salesView port.SalesView,
) Analytics {
	return Analytics{catalog, salesProcessor, salesView}
}

func (s Analytics) enabled() bool {
	return s.salesProcessor != nil && s.salesView != nil
}

// Run runs the services components in separate goroutines.
//
// Blocks current goroutine while components is preparing to ready state.
func (s Analytics) Run(ctx context.Context, stopFn context.CancelFunc) {
	if !s.enabled() {
		return
	}
	var wg sync.WaitGroup
	wg.Add(2)
	go s.salesProcessor.Run(ctx, stopFn, &wg)
	go s.salesView.Run(ctx, stopFn, &wg)
	wg.Wait()
}

func (s Analytics) Close() {
	if !s.enabled() {
		return
	}
	s.salesProcessor.Close()
	s.salesView.Close()
}

// SalesReport returns sales of every catalog product that was sold at
// least once, in catalog order.
func (s Analytics) SalesReport(ctx context.Context) ([]domain.ProductSales, error) {
	const op = "Analytics.SalesReport"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !s.enabled() {
		return []domain.ProductSales{}, nil
	}

	products := s.catalog.Products()
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}

	sales, err := s.salesView.ReadSales(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	report := make([]domain.ProductSales, 0, len(sales))
	for _, v := range sales {
		if v.Quantity == 0 {
			continue
		}
		report = append(report, v)
	}
	return report, nil
}
