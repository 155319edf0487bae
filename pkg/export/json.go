package export

import (
	"encoding/json"
	"time"

	"brewnote.dev/BrewNote/pkg/model"
)

// Document is the JSON export wrapper. Everything inside Recipes round-trips
// unchanged; the wrapper fields describe the export itself.
type Document struct {
	ExportedAt  time.Time       `json:"exportedAt"`
	Application string          `json:"application"`
	Count       int             `json:"count"`
	Recipes     []*model.Recipe `json:"recipes"`
}

func JSON(recipes []*model.Recipe, opts Options) ([]byte, error) {
	recipes = filterByDate(recipes, opts)

	document := Document{
		ExportedAt:  time.Now().UTC(),
		Application: opts.Application,
		Count:       len(recipes),
		Recipes:     recipes,
	}

	return json.MarshalIndent(document, "", "  ")
}
