package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"brewnote.dev/BrewNote/pkg/model"
)

var (
	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrCollectionNotFound = errors.New("collection not found")
)

// RecipeFilter narrows list queries; zero values mean "no restriction".
type RecipeFilter struct {
	Query         string
	Favorite      *bool
	BrewingMethod string
	Origin        string
	CollectionID  *uint
	RoastedAfter  *time.Time
	RoastedBefore *time.Time
	Limit         int
	Offset        int
}

type RecipeRepository interface {
	CreateRecipe(ctx context.Context, recipe *model.Recipe, collectionIDs []uint) (*model.Recipe, error)
	GetRecipeByID(ctx context.Context, recipeID uint) (*model.Recipe, error)
	ListRecipes(ctx context.Context, filter RecipeFilter) ([]*model.Recipe, error)
	UpdateRecipe(ctx context.Context, recipe *model.Recipe, collectionIDs *[]uint) (*model.Recipe, error)
	DeleteRecipe(ctx context.Context, recipeID uint) error
	BatchDeleteRecipes(ctx context.Context, recipeIDs []uint) (int, []error)
	ReplaceRecipeCollections(ctx context.Context, recipeID uint, collectionIDs []uint) error
}

// CreateRecipe inserts the recipe and its collection associations in one
// transaction so a failed association write cannot leave an orphaned link.
func (r *Repository) CreateRecipe(ctx context.Context, recipe *model.Recipe, collectionIDs []uint) (*model.Recipe, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if result := tx.Omit("Collections").Create(recipe); result.Error != nil {
			return result.Error
		}

		return replaceCollections(tx, recipe, collectionIDs)
	})
	if err != nil {
		return nil, err
	}

	return r.GetRecipeByID(ctx, recipe.ID)
}

func (r *Repository) GetRecipeByID(ctx context.Context, recipeID uint) (*model.Recipe, error) {
	var recipe model.Recipe

	result := r.DB.WithContext(ctx).
		Preload("Collections").
		Preload("Collections.Tags").
		First(&recipe, recipeID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrRecipeNotFound, recipeID)
		}

		return nil, result.Error
	}

	return &recipe, nil
}

func (r *Repository) ListRecipes(ctx context.Context, filter RecipeFilter) ([]*model.Recipe, error) {
	var recipes []*model.Recipe

	query := r.DB.WithContext(ctx).
		Preload("Collections").
		Order("recipes.created_at desc")

	updateQueryWithCriteria(filter, query)

	if result := query.Find(&recipes); result.Error != nil {
		r.Logger.Error("error listing recipes", zap.Error(result.Error))

		return nil, result.Error
	}

	return recipes, nil
}

func updateQueryWithCriteria(filter RecipeFilter, query *gorm.DB) {
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		query.Where("recipes.name ILIKE ? OR recipes.origin ILIKE ? OR recipes.brewing_method ILIKE ? OR recipes.notes ILIKE ?",
			pattern, pattern, pattern, pattern)
	}

	if filter.Favorite != nil {
		query.Where("recipes.favorite = ?", *filter.Favorite)
	}

	if filter.BrewingMethod != "" {
		query.Where("recipes.brewing_method = ?", filter.BrewingMethod)
	}

	if filter.Origin != "" {
		query.Where("recipes.origin = ?", filter.Origin)
	}

	if filter.CollectionID != nil {
		query.Where("recipes.id IN (SELECT recipe_id FROM recipe_collections WHERE collection_id = ?)", *filter.CollectionID)
	}

	if filter.RoastedAfter != nil {
		query.Where("recipes.roast_date >= ?", *filter.RoastedAfter)
	}

	if filter.RoastedBefore != nil {
		query.Where("recipes.roast_date <= ?", *filter.RoastedBefore)
	}

	if filter.Limit > 0 {
		query.Limit(filter.Limit)
	}

	if filter.Offset > 0 {
		query.Offset(filter.Offset)
	}
}

// UpdateRecipe replaces all mutable fields. A nil collectionIDs leaves the
// associations untouched; an empty slice clears them.
func (r *Repository) UpdateRecipe(ctx context.Context, recipe *model.Recipe, collectionIDs *[]uint) (*model.Recipe, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if result := tx.Omit("Collections").Save(recipe); result.Error != nil {
			return result.Error
		}

		if collectionIDs == nil {
			return nil
		}

		return replaceCollections(tx, recipe, *collectionIDs)
	})
	if err != nil {
		return nil, err
	}

	return r.GetRecipeByID(ctx, recipe.ID)
}

func (r *Repository) DeleteRecipe(ctx context.Context, recipeID uint) error {
	recipe, err := r.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return err
	}

	result := r.DB.WithContext(ctx).Select(clause.Associations).Delete(recipe)

	return result.Error
}

// BatchDeleteRecipes deletes each id independently and reports how many
// succeeded alongside the per-id failures. Nothing is rolled back.
func (r *Repository) BatchDeleteRecipes(ctx context.Context, recipeIDs []uint) (int, []error) {
	var (
		deleted int
		errs    []error
	)

	for _, recipeID := range recipeIDs {
		if err := r.DeleteRecipe(ctx, recipeID); err != nil {
			r.Logger.Warn("batch delete failed for recipe", zap.Uint("id", recipeID), zap.Error(err))
			errs = append(errs, fmt.Errorf("recipe %d: %w", recipeID, err))

			continue
		}

		deleted++
	}

	return deleted, errs
}

func (r *Repository) ReplaceRecipeCollections(ctx context.Context, recipeID uint, collectionIDs []uint) error {
	recipe, err := r.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return err
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return replaceCollections(tx, recipe, collectionIDs)
	})
}

func replaceCollections(tx *gorm.DB, recipe *model.Recipe, collectionIDs []uint) error {
	collections := make([]model.Collection, 0, len(collectionIDs))

	if len(collectionIDs) > 0 {
		if result := tx.Where("id IN ?", collectionIDs).Find(&collections); result.Error != nil {
			return result.Error
		}

		if len(collections) != len(collectionIDs) {
			return fmt.Errorf("%w: wanted %d, found %d", ErrCollectionNotFound, len(collectionIDs), len(collections))
		}
	}

	return tx.Model(recipe).Association("Collections").Replace(collections)
}

// ErrorList flattens per-item errors into a single error for logging.
func ErrorList(errs []error) error {
	return multierr.Combine(errs...)
}
