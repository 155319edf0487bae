// Package backup serializes the whole journal into one versioned JSON
// document and replays such documents back through the normal create/update
// path.
package backup

import (
	"context"
	"time"

	"go.uber.org/zap"

	"brewnote.dev/BrewNote/pkg/localstore"
	"brewnote.dev/BrewNote/pkg/model"
	"brewnote.dev/BrewNote/pkg/repository"
)

const Version = "2"

type Metadata struct {
	Application     string `json:"application"`
	RecipeCount     int    `json:"recipeCount"`
	CollectionCount int    `json:"collectionCount"`
}

type Document struct {
	Version         string              `json:"version"`
	Timestamp       time.Time           `json:"timestamp"`
	Metadata        Metadata            `json:"metadata"`
	Recipes         []*model.Recipe     `json:"recipes"`
	Collections     []*model.Collection `json:"collections"`
	UserPreferences map[string]any      `json:"userPreferences,omitempty"`
	Statistics      *model.Statistics   `json:"statistics,omitempty"`
}

// HistoryEntry is what the bounded backup history keeps per backup.
type HistoryEntry struct {
	CreatedAt       time.Time `json:"createdAt"`
	Trigger         string    `json:"trigger"`
	RecipeCount     int       `json:"recipeCount"`
	CollectionCount int       `json:"collectionCount"`
}

type recipeStore interface {
	ListRecipes(ctx context.Context, filter repository.RecipeFilter) ([]*model.Recipe, error)
	GetRecipeByID(ctx context.Context, recipeID uint) (*model.Recipe, error)
	CreateRecipe(ctx context.Context, recipe *model.Recipe, collectionIDs []uint) (*model.Recipe, error)
	UpdateRecipe(ctx context.Context, recipe *model.Recipe, collectionIDs *[]uint) (*model.Recipe, error)
}

type collectionStore interface {
	ListCollections(ctx context.Context) ([]*model.CollectionSummary, error)
	GetCollectionByID(ctx context.Context, collectionID uint) (*model.Collection, error)
	CreateCollection(ctx context.Context, collection *model.Collection, tagNames []string) (*model.Collection, error)
	UpdateCollection(ctx context.Context, collection *model.Collection, tagNames *[]string) (*model.Collection, error)
}

type statsStore interface {
	GetStatistics(ctx context.Context) (*model.Statistics, error)
}

type Service struct {
	application string
	recipes     recipeStore
	collections collectionStore
	stats       statsStore
	local       localstore.Store
	logger      *zap.Logger
}

func NewService(application string, repo *repository.Repository, local localstore.Store, logger *zap.Logger) *Service {
	return &Service{application: application, recipes: repo, collections: repo, stats: repo, local: local, logger: logger}
}

// Create serializes every recipe and collection, the local preferences and a
// statistics snapshot, and records the backup in the bounded history.
func (s *Service) Create(ctx context.Context, trigger string) (*Document, error) {
	recipes, err := s.recipes.ListRecipes(ctx, repository.RecipeFilter{})
	if err != nil {
		return nil, err
	}

	summaries, err := s.collections.ListCollections(ctx)
	if err != nil {
		return nil, err
	}

	collections := make([]*model.Collection, 0, len(summaries))
	for _, summary := range summaries {
		collection := summary.Collection
		collections = append(collections, &collection)
	}

	stats, err := s.stats.GetStatistics(ctx)
	if err != nil {
		return nil, err
	}

	preferences := map[string]any{}
	if _, err := s.local.Get(ctx, localstore.KeyPreferences, &preferences); err != nil {
		s.logger.Warn("could not read preferences for backup", zap.Error(err))
	}

	document := &Document{
		Version:   Version,
		Timestamp: time.Now().UTC(),
		Metadata: Metadata{
			Application:     s.application,
			RecipeCount:     len(recipes),
			CollectionCount: len(collections),
		},
		Recipes:         recipes,
		Collections:     collections,
		UserPreferences: preferences,
		Statistics:      stats,
	}

	entry := HistoryEntry{
		CreatedAt:       document.Timestamp,
		Trigger:         trigger,
		RecipeCount:     len(recipes),
		CollectionCount: len(collections),
	}

	if _, err := localstore.PushBounded(ctx, s.local, localstore.KeyBackupHistory, entry, localstore.BackupHistoryLimit); err != nil {
		s.logger.Warn("could not record backup history", zap.Error(err))
	}

	return document, nil
}
