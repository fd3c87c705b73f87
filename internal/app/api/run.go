// Package api composes the commerce HTTP API process.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	customershttp "github.com/Apurer/go-commerce-orders/internal/domains/customers/adapters/httpapi"
	customersmemory "github.com/Apurer/go-commerce-orders/internal/domains/customers/adapters/memory"
	customerspostgres "github.com/Apurer/go-commerce-orders/internal/domains/customers/adapters/persistence/postgres"
	customersapp "github.com/Apurer/go-commerce-orders/internal/domains/customers/application"
	customersports "github.com/Apurer/go-commerce-orders/internal/domains/customers/ports"
	ordershttp "github.com/Apurer/go-commerce-orders/internal/domains/orders/adapters/httpapi"
	ordersmemory "github.com/Apurer/go-commerce-orders/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/go-commerce-orders/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/Apurer/go-commerce-orders/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/Apurer/go-commerce-orders/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/Apurer/go-commerce-orders/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-commerce-orders/internal/domains/orders/ports"
	productshttp "github.com/Apurer/go-commerce-orders/internal/domains/products/adapters/httpapi"
	productsmemory "github.com/Apurer/go-commerce-orders/internal/domains/products/adapters/memory"
	productspostgres "github.com/Apurer/go-commerce-orders/internal/domains/products/adapters/persistence/postgres"
	productsapp "github.com/Apurer/go-commerce-orders/internal/domains/products/application"
	productsports "github.com/Apurer/go-commerce-orders/internal/domains/products/ports"
	platformmigrations "github.com/Apurer/go-commerce-orders/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-commerce-orders/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-commerce-orders/internal/platform/postgres"
	sharederrors "github.com/Apurer/go-commerce-orders/internal/shared/errors"
)

// Run boots the commerce HTTP API with observability, repositories, and
// workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "commerce-orders-api"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger
	cfg := LoadConfig()

	repos, cleanupRepos := buildRepositories(ctx, cfg, logger)
	defer cleanupRepos()

	customerService := customersapp.NewService(repos.customers)
	productService := productsapp.NewService(repos.products)
	coreOrderService := ordersapp.NewService(repos.orders, repos.products, repos.customers)
	orderService := ordersobs.New(
		coreOrderService,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	var orderWorkflows ordersports.WorkflowOrchestrator = ordersworkflows.NewInlineOrderWorkflows(orderService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running inline order placement", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orderWorkflows = ordersworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	responder := sharederrors.NewChainedResponder("",
		ordershttp.ProblemFromError,
		customershttp.ProblemFromError,
		productshttp.ProblemFromError,
	)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	root := router.Group("/")
	customershttp.NewHandler(customerService, responder).RegisterRoutes(root)
	productshttp.NewHandler(productService, responder).RegisterRoutes(root)
	ordershttp.NewHandler(orderService, orderWorkflows, responder).RegisterRoutes(root)

	addr := ":" + cfg.Port
	logger.Info("commerce API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("commerce API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

type repositories struct {
	customers customersports.Repository
	products  productsports.Repository
	orders    ordersports.Repository
}

func buildRepositories(ctx context.Context, cfg Config, logger *slog.Logger) (repositories, func()) {
	db, cleanup := platformpostgres.ConnectOptional(ctx, cfg.PostgresDSN, logger)
	if db == nil {
		return repositories{
			customers: customersmemory.NewRepository(),
			products:  productsmemory.NewRepository(),
			orders:    ordersmemory.NewRepository(),
		}, cleanup
	}
	if err := platformmigrations.Run(db); err != nil {
		logger.Error("failed to apply schema migrations", slog.String("error", err.Error()))
		cleanup()
		os.Exit(1)
	}
	logger.Info("repositories configured with postgres")
	return repositories{
		customers: customerspostgres.NewRepository(db),
		products:  productspostgres.NewRepository(db),
		orders:    orderspostgres.NewRepository(db),
	}, cleanup
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
