package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ProcessWashed    = "washed"
	ProcessNatural   = "natural"
	ProcessHoney     = "honey"
	ProcessAnaerobic = "anaerobic"
	ProcessOther     = "other"
)

const (
	RoastLight       = "light"
	RoastMediumLight = "medium-light"
	RoastMedium      = "medium"
	RoastMediumDark  = "medium-dark"
	RoastDark        = "dark"
)

// TurbulenceStep documents a single pour or agitation during the brew.
type TurbulenceStep struct {
	AtSeconds int     `json:"atSeconds" validate:"min=0"`
	Action    string  `json:"action"    validate:"oneof=pour agitate swirl bloom"`
	VolumeG   float64 `json:"volumeG,omitempty" validate:"min=0"`
	Note      string  `json:"note,omitempty"    validate:"max=200"`
}

type Recipe struct {
	gorm.Model
	UUID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4()"`
	Name     string    `validate:"max=120"`
	Favorite bool

	Origin           string  `validate:"max=120"`
	ProcessingMethod string  `validate:"omitempty,oneof=washed natural honey anaerobic other"`
	AltitudeM        *uint64 `validate:"omitempty,max=5000"`
	RoastDate        *time.Time
	RoastLevel       string `validate:"omitempty,oneof=light medium-light medium medium-dark dark"`

	WaterTemperature *float64                            `validate:"omitempty,min=0,max=100"`
	BrewingMethod    string                              `validate:"max=60"`
	GrinderModel     string                              `validate:"max=120"`
	GrinderSetting   string                              `validate:"max=60"`
	Filter           string                              `validate:"max=120"`
	Notes            string                              `validate:"max=2000"`
	TurbulenceSteps  datatypes.JSONSlice[TurbulenceStep] `validate:"omitempty,max=20,dive"`

	CoffeeBeansG     float64 `validate:"required,gt=0,max=1000"`
	WaterG           float64 `validate:"required,gt=0,max=10000"`
	CoffeeWaterRatio float64
	BrewedWeightG    *float64 `validate:"omitempty,gt=0,max=10000"`
	TDS              *float64 `validate:"omitempty,gt=0,max=10"`
	ExtractionYield  *float64

	// Legacy single-scale 1-10 ratings, one column each so the database
	// enforces the range as well.
	RatingAroma      *int `gorm:"check:rating_aroma >= 1 AND rating_aroma <= 10"           validate:"omitempty,min=1,max=10"`
	RatingAcidity    *int `gorm:"check:rating_acidity >= 1 AND rating_acidity <= 10"       validate:"omitempty,min=1,max=10"`
	RatingSweetness  *int `gorm:"check:rating_sweetness >= 1 AND rating_sweetness <= 10"   validate:"omitempty,min=1,max=10"`
	RatingBody       *int `gorm:"check:rating_body >= 1 AND rating_body <= 10"             validate:"omitempty,min=1,max=10"`
	RatingAftertaste *int `gorm:"check:rating_aftertaste >= 1 AND rating_aftertaste <= 10" validate:"omitempty,min=1,max=10"`
	RatingOverall    *int `gorm:"check:rating_overall >= 1 AND rating_overall <= 10"       validate:"omitempty,min=1,max=10"`

	// The statistics query reads scores out of these columns with the jsonb
	// ->> operator, so they must be typed jsonb rather than the serializer
	// default of text.
	TraditionalSCA *TraditionalSCA `gorm:"type:jsonb;serializer:json"`
	CVADescriptive *CVADescriptive `gorm:"type:jsonb;serializer:json"`
	CVAAffective   *CVAAffective   `gorm:"type:jsonb;serializer:json"`
	QuickTasting   *QuickTasting   `gorm:"type:jsonb;serializer:json"`

	Collections []Collection `gorm:"many2many:recipe_collections;constraint:OnDelete:CASCADE;"`
}

// HasLegacyRatings reports whether any of the single-scale rating columns is
// set.
func (r *Recipe) HasLegacyRatings() bool {
	for _, rating := range []*int{r.RatingAroma, r.RatingAcidity, r.RatingSweetness, r.RatingBody, r.RatingAftertaste, r.RatingOverall} {
		if rating != nil {
			return true
		}
	}

	return false
}

// HasTastingData reports whether any evaluation system carries at least one
// populated tasting field. Saves are rejected when it returns false.
func (r *Recipe) HasTastingData() bool {
	return r.HasLegacyRatings() ||
		r.TraditionalSCA != nil || r.CVADescriptive != nil || r.CVAAffective != nil || r.QuickTasting != nil
}

// Normalize recomputes derived fields and fills a blank name from the bean
// origin and roast date. Called before every create and update.
func (r *Recipe) Normalize() {
	r.CoffeeWaterRatio = CoffeeWaterRatio(r.WaterG, r.CoffeeBeansG)

	if r.BrewedWeightG != nil && r.TDS != nil {
		yield := ExtractionYield(*r.BrewedWeightG, *r.TDS, r.CoffeeBeansG)
		r.ExtractionYield = &yield
	} else {
		r.ExtractionYield = nil
	}

	if r.TraditionalSCA != nil {
		r.TraditionalSCA.FinalScore = r.TraditionalSCA.ComputeFinalScore()
	}

	if r.CVAAffective != nil {
		r.CVAAffective.Score = r.CVAAffective.ComputeScore()
	}

	if strings.TrimSpace(r.Name) == "" {
		r.Name = r.defaultName()
	}
}

func (r *Recipe) defaultName() string {
	origin := strings.TrimSpace(r.Origin)
	if origin == "" {
		origin = "Brew"
	}

	date := r.CreatedAt
	if r.RoastDate != nil {
		date = *r.RoastDate
	}

	if date.IsZero() {
		date = time.Now()
	}

	return fmt.Sprintf("%s %s", origin, date.Format("2006-01-02"))
}
