package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Apurer/go-commerce-orders/internal/domains/orders/domain"
	"github.com/Apurer/go-commerce-orders/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// orderRecord is the order header row. ProductIDs denormalizes the line item
// product ids into a text[] column so "orders containing product X" is a
// single ANY() predicate instead of a join.
type orderRecord struct {
	ID         string         `gorm:"primaryKey;column:id;type:uuid"`
	CustomerID string         `gorm:"column:customer_id;type:uuid;index"`
	ProductIDs pq.StringArray `gorm:"column:product_ids;type:text[]"`
	CreatedAt  time.Time      `gorm:"column:created_at"`
}

func (orderRecord) TableName() string { return "orders" }

// orderItemRecord is one priced line of an order.
type orderItemRecord struct {
	ID        string          `gorm:"primaryKey;column:id;type:uuid"`
	OrderID   string          `gorm:"column:order_id;type:uuid;index"`
	ProductID string          `gorm:"column:product_id;type:uuid"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	Quantity  int32           `gorm:"column:quantity"`
}

func (orderItemRecord) TableName() string { return "order_items" }

// Create stores the order header and its line items in one transaction.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}

	record := orderRecord{
		ID:         order.ID,
		CustomerID: order.CustomerID,
		CreatedAt:  order.CreatedAt,
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	items := make([]orderItemRecord, 0, len(order.Items))
	for _, item := range order.Items {
		record.ProductIDs = append(record.ProductIDs, item.ProductID)
		items = append(items, orderItemRecord{
			ID:        uuid.NewString(),
			OrderID:   record.ID,
			ProductID: item.ProductID,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID loads the order header plus its line items.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	var items []orderItemRecord
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", record.ID).
		Order("product_id").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return toDomain(record, items), nil
}

// List returns all orders with their line items, newest first.
func (r *Repository) List(ctx context.Context) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(records))
	for i := range records {
		ids = append(ids, records[i].ID)
	}
	var items []orderItemRecord
	if err := r.db.WithContext(ctx).Where("order_id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	byOrder := make(map[string][]orderItemRecord, len(records))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, toDomain(records[i], byOrder[records[i].ID]))
	}
	return orders, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toDomain(record orderRecord, items []orderItemRecord) *domain.Order {
	lineItems := make([]domain.LineItem, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, domain.LineItem{
			ProductID: item.ProductID,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	return &domain.Order{
		ID:         record.ID,
		CustomerID: record.CustomerID,
		Items:      lineItems,
		CreatedAt:  record.CreatedAt,
	}
}
