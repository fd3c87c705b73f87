package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	customersmemory "github.com/Apurer/go-commerce-orders/internal/domains/customers/adapters/memory"
	customerspostgres "github.com/Apurer/go-commerce-orders/internal/domains/customers/adapters/persistence/postgres"
	customersports "github.com/Apurer/go-commerce-orders/internal/domains/customers/ports"
	ordersmemory "github.com/Apurer/go-commerce-orders/internal/domains/orders/adapters/memory"
	orderspostgres "github.com/Apurer/go-commerce-orders/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/Apurer/go-commerce-orders/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-commerce-orders/internal/domains/orders/ports"
	productsmemory "github.com/Apurer/go-commerce-orders/internal/domains/products/adapters/memory"
	productspostgres "github.com/Apurer/go-commerce-orders/internal/domains/products/adapters/persistence/postgres"
	productsports "github.com/Apurer/go-commerce-orders/internal/domains/products/ports"
	platformmigrations "github.com/Apurer/go-commerce-orders/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-commerce-orders/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-commerce-orders/internal/platform/postgres"
	orderactivities "github.com/Apurer/go-commerce-orders/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/Apurer/go-commerce-orders/internal/platform/temporal/workflows/orders"
)

func main() {
	ctx := context.Background()
	const serviceName = "commerce-orders-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	repos, cleanupRepos := buildRepositories(ctx, logger)
	defer cleanupRepos()
	orderService := ordersapp.NewService(repos.orders, repos.products, repos.customers)
	activities := orderactivities.NewActivities(orderService)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderPlacementTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderPlacementWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderPlacementWorkflowName})
	w.RegisterActivityWithOptions(activities.PersistOrder, activity.RegisterOptions{Name: orderactivities.PersistOrderActivityName})
	w.RegisterActivityWithOptions(activities.DecrementStock, activity.RegisterOptions{Name: orderactivities.DecrementStockActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderPlacementTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

type repositories struct {
	customers customersports.Repository
	products  productsports.Repository
	orders    ordersports.Repository
}

func buildRepositories(ctx context.Context, logger *slog.Logger) (repositories, func()) {
	dsn := strings.TrimSpace(os.Getenv("POSTGRES_DSN"))
	db, cleanup := platformpostgres.ConnectOptional(ctx, dsn, logger)
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
	logger.Info("worker repositories configured with postgres")
	return repositories{
		customers: customerspostgres.NewRepository(db),
		products:  productspostgres.NewRepository(db),
		orders:    orderspostgres.NewRepository(db),
	}, cleanup
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
