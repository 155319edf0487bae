package export

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/xuri/excelize/v2"

	"brewnote.dev/BrewNote/pkg/model"
)

const (
	dataSheet  = "Recipes"
	statsSheet = "Statistics"
)

// Workbook renders a multi-sheet spreadsheet: the recipe data sheet, an
// optional statistics sheet and optional per-collection sheets.
func Workbook(recipes []*model.Recipe, stats *model.Statistics, opts Options) ([]byte, error) {
	selected, err := selectColumns(opts.Fields)
	if err != nil {
		return nil, err
	}

	recipes = filterByDate(recipes, opts)

	file := excelize.NewFile()
	defer file.Close() //nolint:errcheck // buffer-backed, nothing to clean up

	if err := file.SetSheetName("Sheet1", dataSheet); err != nil {
		return nil, err
	}

	headerStyle, err := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	if err := writeRecipeSheet(file, dataSheet, selected, recipes, headerStyle); err != nil {
		return nil, err
	}

	if opts.IncludeStatistics && stats != nil {
		if err := writeStatsSheet(file, stats, headerStyle); err != nil {
			return nil, err
		}
	}

	if opts.GroupByCollection {
		if err := writeCollectionSheets(file, selected, recipes, headerStyle); err != nil {
			return nil, err
		}
	}

	buffer, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}

func writeRecipeSheet(file *excelize.File, sheet string, selected []column, recipes []*model.Recipe, headerStyle int) error {
	header := make([]any, 0, len(selected))
	for _, col := range selected {
		header = append(header, col.Name)
	}

	if err := file.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	lastHeaderCell, err := excelize.CoordinatesToCellName(len(selected), 1)
	if err != nil {
		return err
	}

	if err := file.SetCellStyle(sheet, "A1", lastHeaderCell, headerStyle); err != nil {
		return err
	}

	for index, recipe := range recipes {
		row := make([]any, 0, len(selected))
		for _, col := range selected {
			row = append(row, col.Value(recipe))
		}

		if err := file.SetSheetRow(sheet, "A"+strconv.Itoa(index+2), &row); err != nil {
			return err
		}
	}

	return nil
}

func writeStatsSheet(file *excelize.File, stats *model.Statistics, headerStyle int) error {
	if _, err := file.NewSheet(statsSheet); err != nil {
		return err
	}

	rows := [][]any{
		{"metric", "value"},
		{"recipes", stats.RecipeCount},
		{"collections", stats.CollectionCount},
		{"favorites", stats.FavoriteCount},
		{"distinct origins", stats.DistinctOrigins},
		{"distinct methods", stats.DistinctMethods},
		{"average ratio", stats.AverageRatio},
		{"average extraction yield", stats.AverageExtraction},
		{"average TDS", stats.AverageTDS},
		{"average SCA score", stats.AverageTraditionalScore},
		{"average CVA score", stats.AverageCVAScore},
		{"best SCA score", stats.BestTraditionalScore},
		{"best CVA score", stats.BestCVAScore},
	}

	for index, row := range rows {
		values := row
		if err := file.SetSheetRow(statsSheet, "A"+strconv.Itoa(index+1), &values); err != nil {
			return err
		}
	}

	return file.SetCellStyle(statsSheet, "A1", "B1", headerStyle)
}

func writeCollectionSheets(file *excelize.File, selected []column, recipes []*model.Recipe, headerStyle int) error {
	grouped := map[string][]*model.Recipe{}

	for _, recipe := range recipes {
		for _, collection := range recipe.Collections {
			grouped[collection.Name] = append(grouped[collection.Name], recipe)
		}
	}

	names := make([]string, 0, len(grouped))
	for name := range grouped {
		names = append(names, name)
	}

	sort.Strings(names)

	used := map[string]bool{dataSheet: true, statsSheet: true}

	for _, name := range names {
		sheet := uniqueSheetName(sanitizeSheetName(name), used)
		used[sheet] = true

		if _, err := file.NewSheet(sheet); err != nil {
			return fmt.Errorf("collection sheet %q: %w", name, err)
		}

		if err := writeRecipeSheet(file, sheet, selected, grouped[name], headerStyle); err != nil {
			return err
		}
	}

	return nil
}

// uniqueSheetName suffixes names that collide with an existing sheet, which
// happens when a collection is named after a reserved sheet or two long names
// truncate identically. The 31-character cap still holds after suffixing.
func uniqueSheetName(base string, used map[string]bool) string {
	if !used[base] {
		return base
	}

	for attempt := 2; ; attempt++ {
		suffix := " " + strconv.Itoa(attempt)

		runes := []rune(base)
		if len(runes)+len(suffix) > 31 {
			runes = runes[:31-len(suffix)]
		}

		candidate := string(runes) + suffix
		if !used[candidate] {
			return candidate
		}
	}
}

// Sheet names are capped at 31 characters and cannot contain the characters
// excel reserves.
func sanitizeSheetName(name string) string {
	sanitized := make([]rune, 0, len(name))

	for _, character := range name {
		switch character {
		case ':', '\\', '/', '?', '*', '[', ']':
			sanitized = append(sanitized, '-')
		default:
			sanitized = append(sanitized, character)
		}
	}

	if len(sanitized) > 31 {
		sanitized = sanitized[:31]
	}

	return string(sanitized)
}
