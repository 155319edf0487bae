package server

import (
	"time"

	"brewnote.dev/BrewNote/pkg/model"
)

// RecipeRequest is the write payload for create and update. Sensory
// sub-records are optional; a missing one means "not assessed with that
// system".
type RecipeRequest struct {
	Name     string `json:"name"`
	Favorite bool   `json:"favorite"`

	Origin           string     `json:"origin"`
	ProcessingMethod string     `json:"processingMethod"`
	AltitudeM        *uint64    `json:"altitudeM"`
	RoastDate        *time.Time `json:"roastDate"`
	RoastLevel       string     `json:"roastLevel"`

	WaterTemperature *float64               `json:"waterTemperature"`
	BrewingMethod    string                 `json:"brewingMethod"`
	GrinderModel     string                 `json:"grinderModel"`
	GrinderSetting   string                 `json:"grinderSetting"`
	Filter           string                 `json:"filter"`
	Notes            string                 `json:"notes"`
	TurbulenceSteps  []model.TurbulenceStep `json:"turbulenceSteps"`

	CoffeeBeansG  float64  `json:"coffeeBeansG"`
	WaterG        float64  `json:"waterG"`
	BrewedWeightG *float64 `json:"brewedWeightG"`
	TDS           *float64 `json:"tds"`

	Ratings        *LegacyRatings        `json:"ratings"`
	TraditionalSCA *model.TraditionalSCA `json:"traditionalSca"`
	CVADescriptive *model.CVADescriptive `json:"cvaDescriptive"`
	CVAAffective   *model.CVAAffective   `json:"cvaAffective"`
	QuickTasting   *model.QuickTasting   `json:"quickTasting"`

	// nil leaves memberships unchanged on update; empty clears them.
	CollectionIDs *[]uint `json:"collectionIds"`
}

type LegacyRatings struct {
	Aroma      *int `json:"aroma"`
	Acidity    *int `json:"acidity"`
	Sweetness  *int `json:"sweetness"`
	Body       *int `json:"body"`
	Aftertaste *int `json:"aftertaste"`
	Overall    *int `json:"overall"`
}

type CollectionRef struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

type RecipeResponse struct {
	ID        uint      `json:"id"`
	UUID      string    `json:"uuid"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name     string `json:"name"`
	Favorite bool   `json:"favorite"`

	Origin           string     `json:"origin,omitempty"`
	ProcessingMethod string     `json:"processingMethod,omitempty"`
	AltitudeM        *uint64    `json:"altitudeM,omitempty"`
	RoastDate        *time.Time `json:"roastDate,omitempty"`
	RoastLevel       string     `json:"roastLevel,omitempty"`

	WaterTemperature *float64               `json:"waterTemperature,omitempty"`
	BrewingMethod    string                 `json:"brewingMethod,omitempty"`
	GrinderModel     string                 `json:"grinderModel,omitempty"`
	GrinderSetting   string                 `json:"grinderSetting,omitempty"`
	Filter           string                 `json:"filter,omitempty"`
	Notes            string                 `json:"notes,omitempty"`
	TurbulenceSteps  []model.TurbulenceStep `json:"turbulenceSteps,omitempty"`

	CoffeeBeansG     float64  `json:"coffeeBeansG"`
	WaterG           float64  `json:"waterG"`
	CoffeeWaterRatio float64  `json:"coffeeWaterRatio"`
	BrewedWeightG    *float64 `json:"brewedWeightG,omitempty"`
	TDS              *float64 `json:"tds,omitempty"`
	ExtractionYield  *float64 `json:"extractionYield,omitempty"`

	Ratings        *LegacyRatings        `json:"ratings,omitempty"`
	TraditionalSCA *model.TraditionalSCA `json:"traditionalSca,omitempty"`
	CVADescriptive *model.CVADescriptive `json:"cvaDescriptive,omitempty"`
	CVAAffective   *model.CVAAffective   `json:"cvaAffective,omitempty"`
	QuickTasting   *model.QuickTasting   `json:"quickTasting,omitempty"`

	Collections []CollectionRef `json:"collections"`
}

func RecipeToModel(request RecipeRequest) model.Recipe {
	recipe := model.Recipe{
		Name:             request.Name,
		Favorite:         request.Favorite,
		Origin:           request.Origin,
		ProcessingMethod: request.ProcessingMethod,
		AltitudeM:        request.AltitudeM,
		RoastDate:        request.RoastDate,
		RoastLevel:       request.RoastLevel,
		WaterTemperature: request.WaterTemperature,
		BrewingMethod:    request.BrewingMethod,
		GrinderModel:     request.GrinderModel,
		GrinderSetting:   request.GrinderSetting,
		Filter:           request.Filter,
		Notes:            request.Notes,
		TurbulenceSteps:  request.TurbulenceSteps,
		CoffeeBeansG:     request.CoffeeBeansG,
		WaterG:           request.WaterG,
		BrewedWeightG:    request.BrewedWeightG,
		TDS:              request.TDS,
		TraditionalSCA:   request.TraditionalSCA,
		CVADescriptive:   request.CVADescriptive,
		CVAAffective:     request.CVAAffective,
		QuickTasting:     request.QuickTasting,
	}

	if request.Ratings != nil {
		recipe.RatingAroma = request.Ratings.Aroma
		recipe.RatingAcidity = request.Ratings.Acidity
		recipe.RatingSweetness = request.Ratings.Sweetness
		recipe.RatingBody = request.Ratings.Body
		recipe.RatingAftertaste = request.Ratings.Aftertaste
		recipe.RatingOverall = request.Ratings.Overall
	}

	return recipe
}

func RecipeFromModel(recipe *model.Recipe) RecipeResponse {
	response := RecipeResponse{
		ID:               recipe.ID,
		UUID:             recipe.UUID.String(),
		CreatedAt:        recipe.CreatedAt,
		UpdatedAt:        recipe.UpdatedAt,
		Name:             recipe.Name,
		Favorite:         recipe.Favorite,
		Origin:           recipe.Origin,
		ProcessingMethod: recipe.ProcessingMethod,
		AltitudeM:        recipe.AltitudeM,
		RoastDate:        recipe.RoastDate,
		RoastLevel:       recipe.RoastLevel,
		WaterTemperature: recipe.WaterTemperature,
		BrewingMethod:    recipe.BrewingMethod,
		GrinderModel:     recipe.GrinderModel,
		GrinderSetting:   recipe.GrinderSetting,
		Filter:           recipe.Filter,
		Notes:            recipe.Notes,
		TurbulenceSteps:  recipe.TurbulenceSteps,
		CoffeeBeansG:     recipe.CoffeeBeansG,
		WaterG:           recipe.WaterG,
		CoffeeWaterRatio: recipe.CoffeeWaterRatio,
		BrewedWeightG:    recipe.BrewedWeightG,
		TDS:              recipe.TDS,
		ExtractionYield:  recipe.ExtractionYield,
		TraditionalSCA:   recipe.TraditionalSCA,
		CVADescriptive:   recipe.CVADescriptive,
		CVAAffective:     recipe.CVAAffective,
		QuickTasting:     recipe.QuickTasting,
		Collections:      make([]CollectionRef, 0, len(recipe.Collections)),
	}

	if recipe.HasLegacyRatings() {
		response.Ratings = &LegacyRatings{
			Aroma:      recipe.RatingAroma,
			Acidity:    recipe.RatingAcidity,
			Sweetness:  recipe.RatingSweetness,
			Body:       recipe.RatingBody,
			Aftertaste: recipe.RatingAftertaste,
			Overall:    recipe.RatingOverall,
		}
	}

	for _, collection := range recipe.Collections {
		response.Collections = append(response.Collections, CollectionRef{
			ID:    collection.ID,
			Name:  collection.Name,
			Color: collection.Color,
		})
	}

	return response
}

func RecipesFromModel(recipes []*model.Recipe) []RecipeResponse {
	responses := make([]RecipeResponse, 0, len(recipes))

	for _, recipe := range recipes {
		responses = append(responses, RecipeFromModel(recipe))
	}

	return responses
}
