package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hotelops/backend/internal/domain/catalog"
	"github.com/hotelops/backend/internal/domain/shared"
)

// GormItemRepository implements ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByID finds an item by its ID
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	var item catalog.Item
	if err := r.db.WithContext(ctx).
		Preload("VendorPrices").
		First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByCode finds an item by its unique code
func (r *GormItemRepository) FindByCode(ctx context.Context, code string) (*catalog.Item, error) {
	var item catalog.Item
	if err := r.db.WithContext(ctx).
		Preload("VendorPrices").
		Where("code = ?", strings.TrimSpace(strings.ToUpper(code))).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByNameAndCategory finds an item by exact name within a category
func (r *GormItemRepository) FindByNameAndCategory(ctx context.Context, name string, category catalog.ItemCategory) (*catalog.Item, error) {
	var item catalog.Item
	if err := r.db.WithContext(ctx).
		Preload("VendorPrices").
		Where("name = ? AND category = ?", strings.TrimSpace(name), category).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByIDs finds multiple items by their IDs
func (r *GormItemRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Item, error) {
	if len(ids) == 0 {
		return []catalog.Item{}, nil
	}

	var items []catalog.Item
	if err := r.db.WithContext(ctx).
		Preload("VendorPrices").
		Where("id IN ?", ids).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindAll finds all items matching the filter
func (r *GormItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Item, error) {
	var items []catalog.Item
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Item{}).Preload("VendorPrices"), filter)

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Count counts items matching the filter
func (r *GormItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&catalog.Item{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an item with its vendor prices
func (r *GormItemRepository) Save(ctx context.Context, item *catalog.Item) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("VendorPrices").Save(item).Error; err != nil {
			return err
		}

		currentPriceIDs := make([]uuid.UUID, len(item.VendorPrices))
		for i, price := range item.VendorPrices {
			currentPriceIDs[i] = price.ID
		}

		if len(currentPriceIDs) > 0 {
			if err := tx.Where("item_id = ? AND id NOT IN ?", item.ID, currentPriceIDs).
				Delete(&catalog.VendorPrice{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("item_id = ?", item.ID).
				Delete(&catalog.VendorPrice{}).Error; err != nil {
				return err
			}
		}

		for i := range item.VendorPrices {
			item.VendorPrices[i].ItemID = item.ID
			if err := tx.Save(&item.VendorPrices[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete deletes an item and its vendor prices
func (r *GormItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", id).Delete(&catalog.VendorPrice{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&catalog.Item{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// IsReferenced reports whether stock balances or recipes reference the item
func (r *GormItemRepository) IsReferenced(ctx context.Context, id uuid.UUID) (bool, error) {
	var balanceCount int64
	if err := r.db.WithContext(ctx).
		Table("stock_balances").
		Where("item_id = ?", id).
		Count(&balanceCount).Error; err != nil {
		return false, err
	}
	if balanceCount > 0 {
		return true, nil
	}

	var ingredientCount int64
	if err := r.db.WithContext(ctx).
		Table("recipe_ingredients").
		Where("item_id = ?", id).
		Count(&ingredientCount).Error; err != nil {
		return false, err
	}
	return ingredientCount > 0, nil
}

func (r *GormItemRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ItemSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

func (r *GormItemRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "category":
			query = query.Where("category = ?", value)
		case "name":
			query = query.Where("name ILIKE ?", "%"+toString(value)+"%")
		case "gst_applicable":
			query = query.Where("gst_applicable = ?", value)
		}
	}
	return query
}

// Ensure GormItemRepository implements ItemRepository
var _ catalog.ItemRepository = (*GormItemRepository)(nil)
