// Package clone duplicates recipes with per-template field resets and keeps
// a short history of recent clones for the UI.
package clone

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"brewnote.dev/BrewNote/pkg/localstore"
	"brewnote.dev/BrewNote/pkg/model"
)

type Template string

const (
	// TemplateExact copies everything and appends " (copy)" to the name.
	TemplateExact Template = "exact"
	// TemplateNewTasting keeps the brew but clears all sensory data.
	TemplateNewTasting Template = "new-tasting"
	// TemplateNewBag additionally clears the roast date.
	TemplateNewBag Template = "new-bag"
	// TemplateTweak clears output measurements and sensory data and stamps
	// the name, for dialing in a variation.
	TemplateTweak Template = "tweak"
)

var ErrUnknownTemplate = errors.New("unknown clone template")

type HistoryEntry struct {
	SourceID uint      `json:"sourceId"`
	CloneID  uint      `json:"cloneId"`
	Name     string    `json:"name"`
	Template Template  `json:"template"`
	ClonedAt time.Time `json:"clonedAt"`
}

// Overrides are optional field replacements applied on top of the template,
// so a clone can be renamed or annotated in the same request.
type Overrides struct {
	Name      *string    `json:"name"`
	Notes     *string    `json:"notes"`
	Favorite  *bool      `json:"favorite"`
	RoastDate *time.Time `json:"roastDate"`
}

type recipeStore interface {
	GetRecipeByID(ctx context.Context, recipeID uint) (*model.Recipe, error)
	CreateRecipe(ctx context.Context, recipe *model.Recipe, collectionIDs []uint) (*model.Recipe, error)
}

type Cloner struct {
	recipes recipeStore
	local   localstore.Store
	logger  *zap.Logger
}

func NewCloner(recipes recipeStore, local localstore.Store, logger *zap.Logger) *Cloner {
	return &Cloner{recipes: recipes, local: local, logger: logger}
}

// Clone duplicates the recipe, applies the template resets and persists the
// copy with the same collection memberships. Clones skip form validation:
// the "new tasting" templates exist precisely to start from an unrated copy.
func (c *Cloner) Clone(ctx context.Context, recipeID uint, template Template, overrides *Overrides) (*model.Recipe, error) {
	source, err := c.recipes.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	duplicate := *source
	duplicate.Model = gorm.Model{}
	duplicate.UUID = uuid.New()

	collectionIDs := make([]uint, 0, len(source.Collections))
	for _, collection := range source.Collections {
		collectionIDs = append(collectionIDs, collection.ID)
	}

	duplicate.Collections = nil

	if err := applyTemplate(&duplicate, template); err != nil {
		return nil, err
	}

	applyOverrides(&duplicate, overrides)

	created, err := c.recipes.CreateRecipe(ctx, &duplicate, collectionIDs)
	if err != nil {
		return nil, err
	}

	entry := HistoryEntry{
		SourceID: source.ID,
		CloneID:  created.ID,
		Name:     created.Name,
		Template: template,
		ClonedAt: time.Now(),
	}

	if _, err := localstore.PushBounded(ctx, c.local, localstore.KeyCloneHistory, entry, localstore.CloneHistoryLimit); err != nil {
		c.logger.Warn("could not record clone history", zap.Error(err))
	}

	return created, nil
}

func (c *Cloner) History(ctx context.Context) ([]HistoryEntry, error) {
	var entries []HistoryEntry

	if _, err := c.local.Get(ctx, localstore.KeyCloneHistory, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}

func applyTemplate(recipe *model.Recipe, template Template) error {
	switch template {
	case TemplateExact:
		recipe.Name += " (copy)"
	case TemplateNewTasting:
		recipe.Name += " (copy)"
		clearSensory(recipe)
	case TemplateNewBag:
		recipe.Name += " (new bag)"
		recipe.RoastDate = nil
		clearSensory(recipe)
	case TemplateTweak:
		recipe.Name = fmt.Sprintf("%s %s", recipe.Name, time.Now().Format("2006-01-02 15:04"))
		recipe.BrewedWeightG = nil
		recipe.TDS = nil
		recipe.ExtractionYield = nil
		clearSensory(recipe)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTemplate, template)
	}

	return nil
}

func applyOverrides(recipe *model.Recipe, overrides *Overrides) {
	if overrides == nil {
		return
	}

	if overrides.Name != nil {
		recipe.Name = *overrides.Name
	}

	if overrides.Notes != nil {
		recipe.Notes = *overrides.Notes
	}

	if overrides.Favorite != nil {
		recipe.Favorite = *overrides.Favorite
	}

	if overrides.RoastDate != nil {
		recipe.RoastDate = overrides.RoastDate
	}
}

func clearSensory(recipe *model.Recipe) {
	recipe.RatingAroma = nil
	recipe.RatingAcidity = nil
	recipe.RatingSweetness = nil
	recipe.RatingBody = nil
	recipe.RatingAftertaste = nil
	recipe.RatingOverall = nil
	recipe.TraditionalSCA = nil
	recipe.CVADescriptive = nil
	recipe.CVAAffective = nil
	recipe.QuickTasting = nil
}
