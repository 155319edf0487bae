package backup

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"brewnote.dev/BrewNote/pkg/localstore"
	"brewnote.dev/BrewNote/pkg/model"
	"brewnote.dev/BrewNote/pkg/repository"
)

var ErrUnsupportedVersion = errors.New("unsupported backup version")

const safetySnapshotKey = "backup.safety"

// RestoreOptions selects what to replay and how to treat entities whose id
// already exists.
type RestoreOptions struct {
	IncludeRecipes     bool
	IncludeCollections bool
	IncludePreferences bool
	OverwriteExisting  bool
	SafetySnapshot     bool
}

// DefaultRestoreOptions restores everything, skips existing entities and
// takes a safety snapshot first.
func DefaultRestoreOptions() RestoreOptions {
	return RestoreOptions{
		IncludeRecipes:     true,
		IncludeCollections: true,
		IncludePreferences: true,
		SafetySnapshot:     true,
	}
}

type Result struct {
	Restored int      `json:"restored"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// Success means at least one entity was restored or skipped cleanly;
// individual failures do not fail the whole restore.
func (r Result) Success() bool {
	return r.Restored > 0 || r.Skipped > 0
}

// Restore replays the document entity by entity, best effort. Collections go
// first so recipe associations can resolve. Already-applied changes are
// never rolled back.
func (s *Service) Restore(ctx context.Context, document *Document, opts RestoreOptions) (*Result, error) {
	if document.Version != Version {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, document.Version)
	}

	if opts.SafetySnapshot {
		snapshot, err := s.Create(ctx, "pre-restore")
		if err != nil {
			return nil, fmt.Errorf("safety snapshot failed: %w", err)
		}

		if err := s.local.Put(ctx, safetySnapshotKey, snapshot); err != nil {
			return nil, fmt.Errorf("safety snapshot failed: %w", err)
		}
	}

	var (
		result Result
		errs   error
	)

	if opts.IncludeCollections {
		for _, collection := range document.Collections {
			s.restoreCollection(ctx, collection, opts, &result, &errs)
		}
	}

	if opts.IncludeRecipes {
		for _, recipe := range document.Recipes {
			s.restoreRecipe(ctx, recipe, opts, &result, &errs)
		}
	}

	if opts.IncludePreferences && len(document.UserPreferences) > 0 {
		if err := s.local.Put(ctx, localstore.KeyPreferences, document.UserPreferences); err != nil {
			multierr.AppendInto(&errs, fmt.Errorf("preferences: %w", err))
		} else {
			result.Restored++
		}
	}

	for _, err := range multierr.Errors(errs) {
		result.Errors = append(result.Errors, err.Error())
	}

	s.logger.Info("restore finished",
		zap.Int("restored", result.Restored),
		zap.Int("skipped", result.Skipped),
		zap.Int("errors", len(result.Errors)))

	return &result, nil
}

func (s *Service) restoreCollection(ctx context.Context, collection *model.Collection, opts RestoreOptions, result *Result, errs *error) {
	tagNames := make([]string, 0, len(collection.Tags))
	for _, tag := range collection.Tags {
		tagNames = append(tagNames, tag.Tag)
	}

	existing, err := s.collections.GetCollectionByID(ctx, collection.ID)

	switch {
	case err == nil && !opts.OverwriteExisting:
		result.Skipped++
	case err == nil:
		collection.CreatedAt = existing.CreatedAt
		if _, err := s.collections.UpdateCollection(ctx, collection, &tagNames); err != nil {
			multierr.AppendInto(errs, fmt.Errorf("collection %d: %w", collection.ID, err))
		} else {
			result.Restored++
		}
	case errors.Is(err, repository.ErrCollectionNotFound):
		if _, err := s.collections.CreateCollection(ctx, collection, tagNames); err != nil {
			multierr.AppendInto(errs, fmt.Errorf("collection %d: %w", collection.ID, err))
		} else {
			result.Restored++
		}
	default:
		multierr.AppendInto(errs, fmt.Errorf("collection %d: %w", collection.ID, err))
	}
}

func (s *Service) restoreRecipe(ctx context.Context, recipe *model.Recipe, opts RestoreOptions, result *Result, errs *error) {
	collectionIDs := make([]uint, 0, len(recipe.Collections))
	for _, collection := range recipe.Collections {
		collectionIDs = append(collectionIDs, collection.ID)
	}

	recipe.Collections = nil

	_, err := s.recipes.GetRecipeByID(ctx, recipe.ID)

	switch {
	case err == nil && !opts.OverwriteExisting:
		result.Skipped++
	case err == nil:
		if _, err := s.recipes.UpdateRecipe(ctx, recipe, &collectionIDs); err != nil {
			multierr.AppendInto(errs, fmt.Errorf("recipe %d: %w", recipe.ID, err))
		} else {
			result.Restored++
		}
	case errors.Is(err, repository.ErrRecipeNotFound):
		if _, err := s.recipes.CreateRecipe(ctx, recipe, collectionIDs); err != nil {
			multierr.AppendInto(errs, fmt.Errorf("recipe %d: %w", recipe.ID, err))
		} else {
			result.Restored++
		}
	default:
		multierr.AppendInto(errs, fmt.Errorf("recipe %d: %w", recipe.ID, err))
	}
}
