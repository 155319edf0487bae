package repository

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"brewnote.dev/BrewNote/pkg/model"
)

type CollectionRepository interface {
	CreateCollection(ctx context.Context, collection *model.Collection, tagNames []string) (*model.Collection, error)
	GetCollectionByID(ctx context.Context, collectionID uint) (*model.Collection, error)
	ListCollections(ctx context.Context) ([]*model.CollectionSummary, error)
	UpdateCollection(ctx context.Context, collection *model.Collection, tagNames *[]string) (*model.Collection, error)
	DeleteCollection(ctx context.Context, collectionID uint) error
}

func (r *Repository) CreateCollection(ctx context.Context, collection *model.Collection, tagNames []string) (*model.Collection, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := fetchOrCreateTags(tx, tagNames)
		if err != nil {
			return err
		}

		collection.Tags = tags

		return tx.Omit("Recipes").Create(collection).Error
	})
	if err != nil {
		return nil, err
	}

	return collection, nil
}

func (r *Repository) GetCollectionByID(ctx context.Context, collectionID uint) (*model.Collection, error) {
	var collection model.Collection

	result := r.DB.WithContext(ctx).
		Preload("Tags").
		First(&collection, collectionID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrCollectionNotFound, collectionID)
		}

		return nil, result.Error
	}

	return &collection, nil
}

func (r *Repository) ListCollections(ctx context.Context) ([]*model.CollectionSummary, error) {
	var summaries []*model.CollectionSummary

	result := r.DB.WithContext(ctx).Table("collections").
		Select("collections.*, count(rc.recipe_id) as recipe_count").
		Joins("LEFT JOIN recipe_collections rc ON rc.collection_id = collections.id").
		Where("collections.deleted_at IS NULL").
		Group("collections.id").
		Order("collections.name asc").
		Find(&summaries)
	if result.Error != nil {
		r.Logger.Error("error listing collections", zap.Error(result.Error))

		return nil, result.Error
	}

	return summaries, nil
}

// UpdateCollection saves the mutable fields; a nil tagNames keeps the
// current tag set.
func (r *Repository) UpdateCollection(ctx context.Context, collection *model.Collection, tagNames *[]string) (*model.Collection, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if result := tx.Omit("Recipes", "Tags").Save(collection); result.Error != nil {
			return result.Error
		}

		if tagNames == nil {
			return nil
		}

		tags, err := fetchOrCreateTags(tx, *tagNames)
		if err != nil {
			return err
		}

		return tx.Model(collection).Association("Tags").Replace(tags)
	})
	if err != nil {
		return nil, err
	}

	return r.GetCollectionByID(ctx, collection.ID)
}

// DeleteCollection removes the collection and its join rows. Recipes
// referenced by the collection are left intact.
func (r *Repository) DeleteCollection(ctx context.Context, collectionID uint) error {
	collection, err := r.GetCollectionByID(ctx, collectionID)
	if err != nil {
		return err
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(collection).Association("Recipes").Clear(); err != nil {
			return err
		}

		if err := tx.Model(collection).Association("Tags").Clear(); err != nil {
			return err
		}

		return tx.Delete(collection).Error
	})
}

func fetchOrCreateTags(tx *gorm.DB, tagNames []string) ([]model.Tag, error) {
	tags := make([]model.Tag, 0, len(tagNames))

	for _, name := range tagNames {
		tag := model.Tag{Tag: name}

		if result := tx.Where("tag = ?", name).FirstOrCreate(&tag); result.Error != nil {
			return nil, result.Error
		}

		tags = append(tags, tag)
	}

	return tags, nil
}
