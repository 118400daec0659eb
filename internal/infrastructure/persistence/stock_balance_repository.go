package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hotelops/backend/internal/domain/inventory"
	"github.com/hotelops/backend/internal/domain/shared"
)

// GormStockBalanceRepository implements StockBalanceRepository using GORM
type GormStockBalanceRepository struct {
	db *gorm.DB
}

// NewGormStockBalanceRepository creates a new GormStockBalanceRepository
func NewGormStockBalanceRepository(db *gorm.DB) *GormStockBalanceRepository {
	return &GormStockBalanceRepository{db: db}
}

// FindByID finds a stock balance by its ID
func (r *GormStockBalanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockBalance, error) {
	var balance inventory.StockBalance
	if err := r.db.WithContext(ctx).First(&balance, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &balance, nil
}

// FindByItemID finds the balance row for an item
func (r *GormStockBalanceRepository) FindByItemID(ctx context.Context, itemID uuid.UUID) (*inventory.StockBalance, error) {
	var balance inventory.StockBalance
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		First(&balance).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &balance, nil
}

// FindByItemIDs finds balance rows for multiple items
func (r *GormStockBalanceRepository) FindByItemIDs(ctx context.Context, itemIDs []uuid.UUID) ([]inventory.StockBalance, error) {
	if len(itemIDs) == 0 {
		return []inventory.StockBalance{}, nil
	}

	var balances []inventory.StockBalance
	if err := r.db.WithContext(ctx).
		Where("item_id IN ?", itemIDs).
		Find(&balances).Error; err != nil {
		return nil, err
	}
	return balances, nil
}

// FindAll finds all stock balances matching the filter
func (r *GormStockBalanceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockBalance, error) {
	var balances []inventory.StockBalance
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&inventory.StockBalance{}), filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, StockBalanceSortFields, "last_updated")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&balances).Error; err != nil {
		return nil, err
	}
	return balances, nil
}

// FindBelowMinimum finds balances currently under their minimum stock level
func (r *GormStockBalanceRepository) FindBelowMinimum(ctx context.Context) ([]inventory.StockBalance, error) {
	var balances []inventory.StockBalance
	if err := r.db.WithContext(ctx).
		Where("minimum_stock_level > 0 AND quantity_on_hand < minimum_stock_level").
		Order("quantity_on_hand ASC").
		Find(&balances).Error; err != nil {
		return nil, err
	}
	return balances, nil
}

// Count counts stock balances matching the filter
func (r *GormStockBalanceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&inventory.StockBalance{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a stock balance
func (r *GormStockBalanceRepository) Save(ctx context.Context, balance *inventory.StockBalance) error {
	return r.db.WithContext(ctx).Save(balance).Error
}

// CreditConditional upserts the balance row and applies the credit as a
// relative increment in one statement. Two concurrent credits for the same
// item both land; two racing first-credits resolve through the unique
// index on item_id instead of surfacing a constraint error.
func (r *GormStockBalanceRepository) CreditConditional(ctx context.Context, itemID uuid.UUID, quantity decimal.Decimal) (*inventory.StockBalance, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("quantity", "must be positive")
	}

	now := time.Now()
	err := r.db.WithContext(ctx).Exec(`
		INSERT INTO stock_balances
			(id, created_at, updated_at, version, item_id, quantity_on_hand, minimum_stock_level, previous_max_stock, last_updated)
		VALUES (?, ?, ?, 1, ?, ?, 0, ?, ?)
		ON CONFLICT (item_id) DO UPDATE SET
			quantity_on_hand = stock_balances.quantity_on_hand + EXCLUDED.quantity_on_hand,
			previous_max_stock = GREATEST(stock_balances.previous_max_stock, stock_balances.quantity_on_hand + EXCLUDED.quantity_on_hand),
			last_updated = EXCLUDED.last_updated,
			updated_at = EXCLUDED.updated_at,
			version = stock_balances.version + 1`,
		uuid.New(), now, now, itemID, quantity, quantity, now,
	).Error
	if err != nil {
		return nil, err
	}

	return r.FindByItemID(ctx, itemID)
}

// DebitConditional atomically decrements quantity on hand only when the
// stored balance covers the requested quantity. The guard lives in the
// UPDATE's WHERE clause, so two concurrent debits can never drive the
// balance negative.
func (r *GormStockBalanceRepository) DebitConditional(ctx context.Context, itemID uuid.UUID, quantity decimal.Decimal) (*inventory.StockBalance, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("quantity", "must be positive")
	}

	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&inventory.StockBalance{}).
		Where("item_id = ? AND quantity_on_hand >= ?", itemID, quantity).
		Updates(map[string]interface{}{
			"quantity_on_hand": gorm.Expr("quantity_on_hand - ?", quantity),
			"last_updated":     now,
			"updated_at":       now,
			"version":          gorm.Expr("version + 1"),
		})

	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		// Guard rejected the debit or no balance row exists
		balance, err := r.FindByItemID(ctx, itemID)
		if err != nil {
			return nil, err
		}
		return nil, shared.NewInsufficientStockError(
			itemID.String(), quantity.String(), balance.QuantityOnHand.String())
	}

	return r.FindByItemID(ctx, itemID)
}

func (r *GormStockBalanceRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "item_id":
			query = query.Where("item_id = ?", value)
		case "below_minimum":
			if value == true {
				query = query.Where("minimum_stock_level > 0 AND quantity_on_hand < minimum_stock_level")
			}
		case "has_stock":
			if value == true {
				query = query.Where("quantity_on_hand > 0")
			}
		}
	}
	return query
}

// Ensure GormStockBalanceRepository implements StockBalanceRepository
var _ inventory.StockBalanceRepository = (*GormStockBalanceRepository)(nil)
