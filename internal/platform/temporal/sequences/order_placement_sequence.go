package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-commerce-orders/internal/domains/orders/domain"
	orderactivities "github.com/Apurer/go-commerce-orders/internal/platform/temporal/activities/orders"
)

// RunOrderPlacementSequence executes the ordered set of activities needed to
// place an order: persist first, then decrement stock. The persist step is
// not retried because its failures are deterministic validation outcomes;
// the decrement is retried until stock catches up with the committed order.
func RunOrderPlacementSequence(ctx workflow.Context, cmd orderactivities.PlacementCommand) (*domain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order placement sequence started", "customerId", cmd.CustomerID)
	persistOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}
	decrementOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		HeartbeatTimeout:    time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}

	var order domain.Order
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, persistOptions), orderactivities.PersistOrderActivityName, cmd).Get(ctx, &order)
	if err != nil {
		logger.Error("order placement sequence failed", "customerId", cmd.CustomerID, "error", err)
		return nil, err
	}
	logger.Info("order placement sequence persisted", "orderId", order.ID)

	if err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, decrementOptions), orderactivities.DecrementStockActivityName, cmd).Get(ctx, nil); err != nil {
		logger.Error("order placement sequence stock decrement failed", "orderId", order.ID, "error", err)
		return &order, err
	}
	logger.Info("order placement sequence completed", "orderId", order.ID)
	return &order, nil
}
