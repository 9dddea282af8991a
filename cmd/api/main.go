package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/api/routes"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/internal/blogs"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/internal/cart"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/internal/categories"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/internal/kyc"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/internal/orders"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/internal/products"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/internal/returns"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/internal/reviews"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/internal/users"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/config"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/db"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/logger"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/metrics"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/migrate"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	// The cart survives on Redis when one is configured. Without one the
	// engine still works, carts just live for the process lifetime.
	var cartStore cart.Store = cart.NewMemoryStore()
	readyPingers := []func() error{pingWithTimeout(dbClient.Ping)}

	redisClient, err := redis.New(context.Background(), cfg.Redis, cfg.Cart.SlotPrefix, logg)
	if err != nil {
		logg.Warn(context.Background(), "redis unavailable, falling back to in-memory cart store")
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		store, err := cart.NewRedisStore(redisClient, cfg.Cart.SlotTTL)
		if err != nil {
			logg.Error(context.Background(), "failed to build cart store", err)
			os.Exit(1)
		}
		cartStore = store
		readyPingers = append(readyPingers, pingWithTimeout(redisClient.Ping))
	}

	cartService, err := cart.NewService(cartStore, logg, cfg.Cart.PersistAsync)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	taxRate, err := decimal.NewFromString(cfg.Orders.TaxRate)
	if err != nil {
		logg.Error(context.Background(), "invalid tax rate", err)
		os.Exit(1)
	}
	flatShipping, err := decimal.NewFromString(cfg.Orders.FlatShipping)
	if err != nil {
		logg.Error(context.Background(), "invalid flat shipping amount", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()
	productService, err := products.NewService(products.NewRepository(gormDB))
	if err != nil {
		exitWiring(logg, "products", err)
	}
	categoryService, err := categories.NewService(categories.NewRepository(gormDB))
	if err != nil {
		exitWiring(logg, "categories", err)
	}
	orderService, err := orders.NewService(orders.NewRepository(gormDB), cartService, taxRate, flatShipping)
	if err != nil {
		exitWiring(logg, "orders", err)
	}
	reviewService, err := reviews.NewService(reviews.NewRepository(gormDB))
	if err != nil {
		exitWiring(logg, "reviews", err)
	}
	kycService, err := kyc.NewService(kyc.NewRepository(gormDB))
	if err != nil {
		exitWiring(logg, "kyc", err)
	}
	returnService, err := returns.NewService(returns.NewRepository(gormDB), orders.NewRepository(gormDB))
	if err != nil {
		exitWiring(logg, "returns", err)
	}
	blogService, err := blogs.NewService(blogs.NewRepository(gormDB), logg)
	if err != nil {
		exitWiring(logg, "blogs", err)
	}
	userService, err := users.NewService(users.NewRepository(gormDB))
	if err != nil {
		exitWiring(logg, "users", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	router := routes.NewRouter(routes.Deps{
		Config:       cfg,
		Logger:       logg,
		Metrics:      httpMetrics,
		Registry:     registry,
		Products:     productService,
		Categories:   categoryService,
		Cart:         cartService,
		Orders:       orderService,
		Reviews:      reviewService,
		KYC:          kycService,
		Returns:      returnService,
		Blogs:        blogService,
		Users:        userService,
		ReadyPingers: readyPingers,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
		// drain write-behind cart persistence before the process exits
		if flusher, ok := cartService.(interface{ Flush() }); ok {
			flusher.Flush()
		}
	}
}

func exitWiring(logg *logger.Logger, name string, err error) {
	logg.Error(context.Background(), "failed to create "+name+" service", err)
	os.Exit(1)
}

func pingWithTimeout(ping func(context.Context) error) func() error {
	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return ping(ctx)
	}
}
