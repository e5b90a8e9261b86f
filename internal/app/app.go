package app

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/niksmo/bloomora/config"
	"github.com/niksmo/bloomora/internal/adapter"
	"github.com/niksmo/bloomora/internal/adapter/fixtures"
	"github.com/niksmo/bloomora/internal/adapter/httphandler"
	"github.com/niksmo/bloomora/internal/adapter/kafka"
	"github.com/niksmo/bloomora/internal/adapter/simulated"
	"github.com/niksmo/bloomora/internal/adapter/storage"
	"github.com/niksmo/bloomora/internal/core/port"
	"github.com/niksmo/bloomora/internal/core/service"
	"github.com/niksmo/bloomora/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
	"golang.org/x/sync/errgroup"
)

type outbound struct {
	identity     port.IdentityStorage
	closeStorage func()

	producer       *kafka.OrdersProducer
	salesProcessor *kafka.SalesProcessor
	salesView      *kafka.SalesView
}

type coreService struct {
	catalog   service.Catalog
	cart      *service.CartStore
	session   *service.SessionStore
	checkout  *service.Checkout
	care      *service.Care
	blog      service.Blog
	quiz      service.Quiz
	analytics service.Analytics
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	data       fixtures.Data
	outbound   outbound
	service    coreService
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initFixtures()
	app.initOutboundAdapters()
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initFixtures() {
	const op = "App.initFixtures"

	data, err := fixtures.Load(time.Now())
	if err != nil {
		app.fallDown(op, err)
	}
	app.data = data
}

// initOutboundAdapters connects storage and broker concurrently.
func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	g, ctx := errgroup.WithContext(app.ctx)
	g.Go(func() error { return app.initStorage(ctx) })
	if app.cfg.Broker.Enabled {
		g.Go(func() error { return app.initBroker(ctx) })
	}
	if err := g.Wait(); err != nil {
		app.fallDown(op, err)
	}
}

func (app *App) initStorage(ctx context.Context) error {
	const op = "App.initStorage"
	cfg := app.cfg.Storage

	var kv interface {
		Get(ctx context.Context, key string) (string, error)
		Set(ctx context.Context, key, value string) error
		Delete(ctx context.Context, key string) error
	}

	switch cfg.Driver {
	case storage.DriverRedis:
		r, err := storage.NewRedisKV(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		kv = r
		app.outbound.closeStorage = r.Close
	default:
		db, err := storage.NewSQLDB(ctx, cfg.Driver, cfg.DSN)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		kv = storage.NewSQLKV(db)
		app.outbound.closeStorage = db.Close
	}

	app.outbound.identity = storage.NewIdentityRepository(
		kv, app.cfg.Session.IdentityKey,
	)
	slog.Info("storage is connected", "op", op, "driver", cfg.Driver)
	return nil
}

func (app *App) initBroker(ctx context.Context) error {
	const op = "App.initBroker"
	cfg := app.cfg.Broker

	var tlsConfig *tls.Config
	if cfg.TLS.Enabled() {
		var err error
		tlsConfig, err = adapter.MakeTLSConfig(cfg.TLS.CA, cfg.TLS.Cert, cfg.TLS.Key)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		kafka.ApplyTLS(tlsConfig)
	}

	srClient, err := sr.NewClient(sr.URLs(cfg.SchemaRegistryURLs...))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	orderSerde, err := schema.NewSerdeOrderPlacedV1(
		ctx,
		schema.SubjectOpt(schema.TopicValueSubject(cfg.Topics.OrdersPlaced)),
		schema.SchemaIdentifierOpt(schema.NewRegistryIdentifier(srClient)),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var undo rollback

	producer, err := kafka.NewOrdersProducer(
		kafka.ProducerClientOpt(
			ctx, cfg.SeedBrokers, cfg.Topics.OrdersPlaced, tlsConfig,
		),
		kafka.ProducerEncoderOpt(orderSerde),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	undo.add(producer.Close)

	// the processor goes last, nothing stops it before Run
	salesView, err := kafka.NewSalesView(
		cfg.SeedBrokers, cfg.Consumers.SalesGroup,
	)
	if err != nil {
		undo.run()
		return fmt.Errorf("%s: %w", op, err)
	}
	undo.add(salesView.Close)

	salesProcessor, err := kafka.NewSalesProc(
		cfg.SeedBrokers,
		cfg.Topics.OrdersPlaced,
		cfg.Consumers.SalesGroup,
		orderSerde,
	)
	if err != nil {
		undo.run()
		return fmt.Errorf("%s: %w", op, err)
	}

	app.outbound.producer = &producer
	app.outbound.salesProcessor = salesProcessor
	app.outbound.salesView = salesView
	slog.Info("broker is connected", "op", op)
	return nil
}

func (app *App) initCoreService() {
	s := &app.service

	s.catalog = service.NewCatalog(app.data.Products)
	s.cart = service.NewCartStore()
	s.session = service.NewSessionStore(
		app.ctx,
		app.outbound.identity,
		simulated.NewGoogleProvider(app.cfg.Session.SignInDelay),
	)

	var checkoutOpts []service.CheckoutOpt
	if app.outbound.producer != nil {
		checkoutOpts = append(checkoutOpts,
			service.OrderEventsOpt(app.outbound.producer))
	}
	s.checkout = service.NewCheckout(
		s.cart,
		s.session,
		simulated.NewPaymentGateway(app.cfg.Checkout.PaymentDelay),
		checkoutOpts...,
	)

	s.care = service.NewCare(app.data.Tasks)
	s.blog = service.NewBlog(app.data.Posts)
	s.quiz = service.NewQuiz(s.catalog)

	if app.cfg.Broker.Enabled {
		s.analytics = service.NewAnalytics(
			s.catalog,
			app.outbound.salesProcessor,
			app.outbound.salesView,
		)
	}
}

func (app *App) initInboundAdapters() {
	s := app.service

	mux := http.NewServeMux()
	httphandler.RegisterCatalog(mux, s.catalog)
	httphandler.RegisterCart(mux, s.cart, s.catalog)
	httphandler.RegisterSession(mux, s.session)
	httphandler.RegisterCheckout(mux, s.checkout)
	httphandler.RegisterContent(
		mux, s.catalog, s.care, s.blog, s.quiz, app.data.Promos,
	)
	httphandler.RegisterAdmin(mux, s.analytics)

	handler := httphandler.LogRequests(httphandler.AllowJSON(mux))
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

// Run blocks until the sales components are ready, then serves HTTP.
func (app *App) Run(stopFn context.CancelFunc) {
	app.service.analytics.Run(app.ctx, stopFn)
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.service.analytics.Close()
	if app.outbound.producer != nil {
		app.outbound.producer.Close()
	}
	app.outbound.closeStorage()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}

// A rollback closes the adapters built so far, newest first.
type rollback []func()

func (r *rollback) add(closeFn func()) {
	*r = append(*r, closeFn)
}

func (r rollback) run() {
	for i := len(r) - 1; i >= 0; i-- {
		r[i]()
	}
}
