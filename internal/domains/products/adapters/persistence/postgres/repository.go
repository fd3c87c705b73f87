package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-commerce-orders/internal/domains/products/domain"
	"github.com/Apurer/go-commerce-orders/internal/domains/products/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists products in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// productRecord maps the product aggregate to a relational table.
type productRecord struct {
	ID        string          `gorm:"primaryKey;column:id;type:uuid"`
	Name      string          `gorm:"column:name;uniqueIndex"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	Quantity  int32           `gorm:"column:quantity"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Save inserts or updates a product, assigning an identifier on first save.
func (r *Repository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	record := toRecord(product)
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":       record.Name,
				"price":      record.Price,
				"quantity":   record.Quantity,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.findByID(ctx, record.ID)
}

// FindByName fetches a product by its unique name.
func (r *Repository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.db.WithContext(ctx).First(&record, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// FindAllByID returns the subset of ids present in the table. A partial or
// empty result is not an error; callers own the completeness check.
func (r *Repository) FindAllByID(ctx context.Context, ids []string) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	var records []productRecord
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&records).Error; err != nil {
		return nil, err
	}
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products, nil
}

// UpdateQuantity applies the decrements inside one transaction, taking row
// locks so concurrent placements cannot both pass the sufficiency check
// against the same stale quantity.
func (r *Repository) UpdateQuantity(ctx context.Context, decrements []domain.QuantityDecrement) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	affected := make([]*domain.Product, 0, len(decrements))
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, d := range decrements {
			if d.Quantity <= 0 {
				return fmt.Errorf("product %q: %w", d.ProductID, domain.ErrInvalidDecrement)
			}
			var record productRecord
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&record, "id = ?", d.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %q", ports.ErrNotFound, d.ProductID)
				}
				return err
			}
			if record.Quantity < d.Quantity {
				return fmt.Errorf("product %q: %w", d.ProductID, domain.ErrQuantityExceeded)
			}
			if err := tx.Model(&productRecord{}).
				Where("id = ?", d.ProductID).
				Updates(map[string]any{
					"quantity":   gorm.Expr("quantity - ?", d.Quantity),
					"updated_at": gorm.Expr("NOW()"),
				}).Error; err != nil {
				return err
			}
			record.Quantity -= d.Quantity
			affected = append(affected, record.toDomain())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return affected, nil
}

// List returns all products.
func (r *Repository) List(ctx context.Context) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []productRecord
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products, nil
}

func (r *Repository) findByID(ctx context.Context, id string) (*domain.Product, error) {
	var record productRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres product repository not configured")
	}
	return nil
}

func toRecord(product *domain.Product) productRecord {
	return productRecord{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		Quantity: product.Quantity,
	}
}

func (r productRecord) toDomain() *domain.Product {
	return &domain.Product{
		ID:       r.ID,
		Name:     r.Name,
		Price:    r.Price,
		Quantity: r.Quantity,
	}
}
