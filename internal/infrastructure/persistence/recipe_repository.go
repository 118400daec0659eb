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

// GormRecipeRepository implements RecipeRepository using GORM
type GormRecipeRepository struct {
	db *gorm.DB
}

// NewGormRecipeRepository creates a new GormRecipeRepository
func NewGormRecipeRepository(db *gorm.DB) *GormRecipeRepository {
	return &GormRecipeRepository{db: db}
}

// FindByID finds a recipe by its ID
func (r *GormRecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Recipe, error) {
	var recipe catalog.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Ingredients").
		First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// FindByDishName finds a recipe by its unique dish name
func (r *GormRecipeRepository) FindByDishName(ctx context.Context, dishName string) (*catalog.Recipe, error) {
	var recipe catalog.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Ingredients").
		Where("dish_name = ?", strings.TrimSpace(dishName)).
		First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// FindAll finds all recipes matching the filter
func (r *GormRecipeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Recipe, error) {
	var recipes []catalog.Recipe
	query := r.db.WithContext(ctx).Model(&catalog.Recipe{}).Preload("Ingredients")

	for key, value := range filter.Filters {
		if key == "dish_name" {
			query = query.Where("dish_name ILIKE ?", "%"+toString(value)+"%")
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, RecipeSortFields, "dish_name")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// Count counts recipes matching the filter
func (r *GormRecipeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&catalog.Recipe{})

	for key, value := range filter.Filters {
		if key == "dish_name" {
			query = query.Where("dish_name ILIKE ?", "%"+toString(value)+"%")
		}
	}

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a recipe with its ingredient lines
func (r *GormRecipeRepository) Save(ctx context.Context, recipe *catalog.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Ingredients").Save(recipe).Error; err != nil {
			return err
		}

		currentIngredientIDs := make([]uuid.UUID, len(recipe.Ingredients))
		for i, ing := range recipe.Ingredients {
			currentIngredientIDs[i] = ing.ID
		}

		if len(currentIngredientIDs) > 0 {
			if err := tx.Where("recipe_id = ? AND id NOT IN ?", recipe.ID, currentIngredientIDs).
				Delete(&catalog.RecipeIngredient{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("recipe_id = ?", recipe.ID).
				Delete(&catalog.RecipeIngredient{}).Error; err != nil {
				return err
			}
		}

		for i := range recipe.Ingredients {
			recipe.Ingredients[i].RecipeID = recipe.ID
			if err := tx.Save(&recipe.Ingredients[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete deletes a recipe and its ingredient lines
func (r *GormRecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&catalog.RecipeIngredient{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&catalog.Recipe{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// ExistsByDishName checks dish-name uniqueness
func (r *GormRecipeRepository) ExistsByDishName(ctx context.Context, dishName string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Recipe{}).
		Where("dish_name = ?", strings.TrimSpace(dishName)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormRecipeRepository implements RecipeRepository
var _ catalog.RecipeRepository = (*GormRecipeRepository)(nil)
