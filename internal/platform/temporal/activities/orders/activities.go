package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	"github.com/Apurer/go-commerce-orders/internal/domains/orders/domain"
)

const (
	// PersistOrderActivityName validates and stores the order without touching stock.
	PersistOrderActivityName = "orders.activities.PersistOrder"
	// DecrementStockActivityName writes the ordered quantities back against product storage.
	DecrementStockActivityName = "orders.activities.DecrementStock"
)

// OrderPlacer is the slice of the order application service the activities
// need: the two halves of placement, separately addressable so the workflow
// can retry the stock write without re-running the order insert.
type OrderPlacer interface {
	PersistOrder(ctx context.Context, customerID string, items []domain.ItemRequest) (*domain.Order, error)
	DecrementStock(ctx context.Context, items []domain.ItemRequest) error
}

// PlacementCommand is the serializable placement request carried through the workflow.
type PlacementCommand struct {
	CustomerID string
	Items      []domain.ItemRequest
}

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	placer OrderPlacer
}

// NewActivities wires the order service into the Temporal activities bundle.
func NewActivities(placer OrderPlacer) *Activities {
	return &Activities{placer: placer}
}

// PersistOrder runs the placement validations and stores the order. The
// validations are deterministic against storage state, so the workflow does
// not retry this activity.
func (a *Activities) PersistOrder(ctx context.Context, cmd PlacementCommand) (*domain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.placer == nil {
		logger.Error("order persist activity not initialized", "customerId", cmd.CustomerID)
		return nil, errors.New("order persist activity not initialized")
	}
	logger.Info("PersistOrder activity started", "customerId", cmd.CustomerID, "items", len(cmd.Items))
	order, err := a.placer.PersistOrder(ctx, cmd.CustomerID, cmd.Items)
	if err != nil {
		logger.Error("PersistOrder activity failed", "customerId", cmd.CustomerID, "error", err)
		return nil, err
	}
	logger.Info("PersistOrder activity completed", "orderId", order.ID)
	return order, nil
}

// DecrementStock applies the ordered quantities to product storage. It is
// retried on failure; a heartbeat marker guards against decrementing twice
// when an attempt succeeded but its result never reached the server.
func (a *Activities) DecrementStock(ctx context.Context, cmd PlacementCommand) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.placer == nil {
		logger.Error("stock decrement activity not initialized", "customerId", cmd.CustomerID)
		return errors.New("stock decrement activity not initialized")
	}

	var hb decrementHeartbeat
	if activity.HasHeartbeatDetails(ctx) {
		_ = activity.GetHeartbeatDetails(ctx, &hb)
	}
	if hb.Completed {
		logger.Info("DecrementStock already completed in prior attempt; skipping", "customerId", cmd.CustomerID)
		return nil
	}

	logger.Info("DecrementStock activity started", "customerId", cmd.CustomerID, "items", len(cmd.Items))
	if err := a.placer.DecrementStock(ctx, cmd.Items); err != nil {
		logger.Error("DecrementStock activity failed", "customerId", cmd.CustomerID, "error", err)
		return err
	}
	activity.RecordHeartbeat(ctx, decrementHeartbeat{Completed: true})
	logger.Info("DecrementStock activity completed", "customerId", cmd.CustomerID)
	return nil
}

type decrementHeartbeat struct {
	Completed bool
}
