package migrations

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&customerRecord{},
		&productRecord{},
		&orderRecord{},
		&orderItemRecord{},
	)
}

// Customer schema mirrors the customers Postgres adapter.
type customerRecord struct {
	ID        string    `gorm:"primaryKey;column:id;type:uuid"`
	Name      string    `gorm:"column:name"`
	Email     string    `gorm:"column:email;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (customerRecord) TableName() string { return "customers" }

// Product schema mirrors the products Postgres adapter.
type productRecord struct {
	ID        string          `gorm:"primaryKey;column:id;type:uuid"`
	Name      string          `gorm:"column:name;uniqueIndex"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	Quantity  int32           `gorm:"column:quantity"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Order header schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID         string         `gorm:"primaryKey;column:id;type:uuid"`
	CustomerID string         `gorm:"column:customer_id;type:uuid;index"`
	ProductIDs pq.StringArray `gorm:"column:product_ids;type:text[]"`
	CreatedAt  time.Time      `gorm:"column:created_at;index"`
}

func (orderRecord) TableName() string { return "orders" }

// Order line item schema mirrors the orders Postgres adapter.
type orderItemRecord struct {
	ID        string          `gorm:"primaryKey;column:id;type:uuid"`
	OrderID   string          `gorm:"column:order_id;type:uuid;index"`
	ProductID string          `gorm:"column:product_id;type:uuid"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	Quantity  int32           `gorm:"column:quantity"`
}

func (orderItemRecord) TableName() string { return "order_items" }
