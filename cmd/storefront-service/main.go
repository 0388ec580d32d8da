package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/db"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/events"
	httpapi "github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/http"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/logger"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/metrics"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/store/mongodb"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/store/postgres"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogMode, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("storefront service stopped", "error", err)
	}
}

func run(cfg config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- store ---
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close()

	// --- events ---
	publisher, closePublisher, err := newPublisher(ctx, cfg, st.sequences, log)
	if err != nil {
		return err
	}
	defer closePublisher()

	// --- services ---
	productService := catalog.NewProductService(st.products, st.categories, publisher, log)
	categoryService := catalog.NewCategoryService(st.categories, st.products)
	cartService := cart.NewService(st.carts, st.products, publisher, log)

	// --- HTTP ---
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewServerMetrics(reg, "storefront_service")

	h := httpapi.NewHandler(productService, categoryService, cartService, log, cfg.RequestTimeout)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpapi.NewRouter(h, m, cfg.CORSAllowOrigins),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http listening", "addr", srv.Addr, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("shutdown complete")
	return nil
}

type stores struct {
	products   catalog.ProductRepository
	categories catalog.CategoryRepository
	carts      cart.Repository
	sequences  events.SequenceRepository
	close      func()
}

func openStores(ctx context.Context, cfg config.Config, log *logger.Logger) (*stores, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := db.NewPool(ctx, cfg.DatabaseDSN, cfg.ConnectTimeout)
		if err != nil {
			return nil, fmt.Errorf("db connect: %w", err)
		}
		if cfg.RunMigrations {
			if err := db.RunMigrations(cfg.DatabaseDSN, log); err != nil {
				pool.Close()
				return nil, fmt.Errorf("db migrate: %w", err)
			}
		}
		return &stores{
			products:   postgres.NewProductRepository(pool),
			categories: postgres.NewCategoryRepository(pool),
			carts:      postgres.NewCartRepository(pool),
			sequences:  postgres.NewSequenceRepository(pool),
			close:      pool.Close,
		}, nil

	case config.DriverMongo:
		st, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.ConnectTimeout)
		if err != nil {
			return nil, err
		}
		if err := st.EnsureIndexes(ctx); err != nil {
			_ = st.Disconnect(context.Background())
			return nil, err
		}
		return &stores{
			products:   st.Products(),
			categories: st.Categories(),
			carts:      st.Carts(),
			sequences:  st.Sequences(),
			close: func() {
				if err := st.Disconnect(context.Background()); err != nil {
					log.Warn("mongo disconnect failed", "error", err)
				}
			},
		}, nil
	}
	return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
}

type eventsPublisher interface {
	cart.EventsPublisher
	catalog.ProductEventsPublisher
}

func newPublisher(ctx context.Context, cfg config.Config, seq events.SequenceRepository, log *logger.Logger) (eventsPublisher, func(), error) {
	if cfg.RabbitMQURL == "" {
		log.Info("RABBITMQ_URL not set, events are not published")
		return events.NoopPublisher{}, func() {}, nil
	}

	conn, err := events.Dial(ctx, cfg.RabbitMQURL, cfg.ConnectTimeout)
	if err != nil {
		return nil, nil, err
	}
	pub, err := events.NewPublisher(conn, seq, events.PublisherOptions{})
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return pub, func() {
		_ = pub.Close()
		_ = conn.Close()
	}, nil
}
