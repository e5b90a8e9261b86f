package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/niksmo/bloomora/internal/core/domain"
	"github.com/niksmo/bloomora/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubComponent struct {
	mu     sync.Mutex
	runs   int
	closed bool
}

func (c *stubComponent) Run(_ context.Context, _ context.CancelFunc, wg *sync.WaitGroup) {
	c.mu.Lock()
	c.runs++
	c.mu.Unlock()
	wg.Done()
}

func (c *stubComponent) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

type stubSalesView struct {
	stubComponent
	*MockSalesView
}

func TestAnalytics(t *testing.T) {
	catalog := service.NewCatalog(testProducts())

	t.Run("Disabled", func(t *testing.T) {
		var a service.Analytics
		a.Run(t.Context(), func() {})
		a.Close()

		report, err := a.SalesReport(t.Context())
		require.NoError(t, err)
		assert.Empty(t, report)
	})

	t.Run("RunAndClose", func(t *testing.T) {
		proc := new(stubComponent)
		view := &stubSalesView{MockSalesView: new(MockSalesView)}
		a := service.NewAnalytics(catalog, proc, view)

		a.Run(t.Context(), func() {})
		a.Close()

		assert.Equal(t, 1, proc.runs)
		assert.Equal(t, 1, view.runs)
		assert.True(t, proc.closed)
		assert.True(t, view.closed)
	})

	t.Run("SalesReportSkipsUnsold", func(t *testing.T) {
		view := &stubSalesView{MockSalesView: new(MockSalesView)}
		view.On("ReadSales", mock.Anything, []string{"A", "B", "C", "D"}).
			Return([]domain.ProductSales{
				{ProductID: "A", Name: productA.Name, Quantity: 2, Revenue: 1998},
				{ProductID: "B"},
				{ProductID: "D", Name: productD.Name, Quantity: 1, Revenue: 3500},
			}, nil)

		a := service.NewAnalytics(catalog, new(stubComponent), view)
		report, err := a.SalesReport(t.Context())
		require.NoError(t, err)
		require.Len(t, report, 2)
		assert.Equal(t, "A", report[0].ProductID)
		assert.Equal(t, "D", report[1].ProductID)
	})

	t.Run("SalesReportError", func(t *testing.T) {
		errView := errors.New("view is not ready")
		view := &stubSalesView{MockSalesView: new(MockSalesView)}
		view.On("ReadSales", mock.Anything, mock.Anything).
			Return([]domain.ProductSales(nil), errView)

		a := service.NewAnalytics(catalog, new(stubComponent), view)
		_, err := a.SalesReport(t.Context())
		assert.ErrorIs(t, err, errView)
	})
}
