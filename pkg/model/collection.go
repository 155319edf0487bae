package model

import (
	"gorm.io/gorm"
)

type Collection struct {
	gorm.Model
	Name        string `gorm:"uniqueIndex" validate:"required,max=60"`
	Description string `validate:"max=500"`
	Color       string `validate:"omitempty,hexcolor"`
	Private     bool
	Tags        []Tag `gorm:"many2many:collection_tags;"`

	Recipes []Recipe `gorm:"many2many:recipe_collections;"`
}

type Tag struct {
	gorm.Model
	Tag string `gorm:"uniqueIndex"`
}

// CollectionSummary is a Collection plus its recipe count, as returned by
// list queries.
type CollectionSummary struct {
	Collection
	RecipeCount int64
}

// Statistics is the aggregate snapshot embedded in backups and the export
// statistics sheet.
type Statistics struct {
	RecipeCount             int64
	CollectionCount         int64
	FavoriteCount           int64
	DistinctOrigins         int64
	DistinctMethods         int64
	AverageRatio            float64
	AverageExtraction       float64
	AverageTDS              float64
	AverageTraditionalScore float64
	AverageCVAScore         float64
	BestTraditionalScore    float64
	BestCVAScore            float64
}
