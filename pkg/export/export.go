// Package export renders recipe lists into the supported interchange
// formats. Every renderer is a pure function of (recipes, options); an error
// aborts the whole export, there is no partial output.
package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"brewnote.dev/BrewNote/pkg/model"
)

const dateFormat = "2006-01-02"

// Options applies to all formats. An empty Fields list exports every column.
type Options struct {
	Application       string
	Fields            []string
	From              *time.Time
	To                *time.Time
	IncludeStatistics bool
	GroupByCollection bool
}

type column struct {
	Name  string
	Value func(recipe *model.Recipe) string
}

var columns = []column{
	{"id", func(r *model.Recipe) string { return strconv.FormatUint(uint64(r.ID), 10) }},
	{"name", func(r *model.Recipe) string { return r.Name }},
	{"createdAt", func(r *model.Recipe) string { return r.CreatedAt.Format(dateFormat) }},
	{"favorite", func(r *model.Recipe) string { return strconv.FormatBool(r.Favorite) }},
	{"origin", func(r *model.Recipe) string { return r.Origin }},
	{"process", func(r *model.Recipe) string { return r.ProcessingMethod }},
	{"roastDate", func(r *model.Recipe) string { return formatDate(r.RoastDate) }},
	{"roastLevel", func(r *model.Recipe) string { return r.RoastLevel }},
	{"method", func(r *model.Recipe) string { return r.BrewingMethod }},
	{"grinder", func(r *model.Recipe) string {
		return strings.TrimSpace(r.GrinderModel + " " + r.GrinderSetting)
	}},
	{"filter", func(r *model.Recipe) string { return r.Filter }},
	{"temperature", func(r *model.Recipe) string { return formatFloat(r.WaterTemperature) }},
	{"coffeeG", func(r *model.Recipe) string { return trimFloat(r.CoffeeBeansG) }},
	{"waterG", func(r *model.Recipe) string { return trimFloat(r.WaterG) }},
	{"ratio", func(r *model.Recipe) string { return trimFloat(r.CoffeeWaterRatio) }},
	{"brewedG", func(r *model.Recipe) string { return formatFloat(r.BrewedWeightG) }},
	{"tds", func(r *model.Recipe) string { return formatFloat(r.TDS) }},
	{"extractionYield", func(r *model.Recipe) string { return formatFloat(r.ExtractionYield) }},
	{"legacyOverall", func(r *model.Recipe) string { return formatInt(r.RatingOverall) }},
	{"scaScore", func(r *model.Recipe) string {
		if r.TraditionalSCA == nil {
			return ""
		}

		return trimFloat(r.TraditionalSCA.FinalScore)
	}},
	{"cvaScore", func(r *model.Recipe) string {
		if r.CVAAffective == nil {
			return ""
		}

		return trimFloat(r.CVAAffective.Score)
	}},
	{"collections", func(r *model.Recipe) string { return strings.Join(collectionNames(r), "; ") }},
	{"notes", func(r *model.Recipe) string { return r.Notes }},
}

func selectColumns(names []string) ([]column, error) {
	if len(names) == 0 {
		return columns, nil
	}

	byName := make(map[string]column, len(columns))
	for _, col := range columns {
		byName[col.Name] = col
	}

	selected := make([]column, 0, len(names))

	for _, name := range names {
		col, found := byName[name]
		if !found {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
		}

		selected = append(selected, col)
	}

	return selected, nil
}

func filterByDate(recipes []*model.Recipe, opts Options) []*model.Recipe {
	if opts.From == nil && opts.To == nil {
		return recipes
	}

	filtered := make([]*model.Recipe, 0, len(recipes))

	for _, recipe := range recipes {
		if opts.From != nil && recipe.CreatedAt.Before(*opts.From) {
			continue
		}

		if opts.To != nil && recipe.CreatedAt.After(*opts.To) {
			continue
		}

		filtered = append(filtered, recipe)
	}

	return filtered
}

func collectionNames(recipe *model.Recipe) []string {
	names := make([]string, 0, len(recipe.Collections))
	for _, collection := range recipe.Collections {
		names = append(names, collection.Name)
	}

	return names
}

func formatDate(date *time.Time) string {
	if date == nil {
		return ""
	}

	return date.Format(dateFormat)
}

func formatFloat(value *float64) string {
	if value == nil {
		return ""
	}

	return trimFloat(*value)
}

func trimFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func formatInt(value *int) string {
	if value == nil {
		return ""
	}

	return strconv.Itoa(*value)
}
