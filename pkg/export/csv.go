package export

import (
	"bytes"
	"encoding/csv"
	"errors"

	"brewnote.dev/BrewNote/pkg/model"
)

var ErrUnknownField = errors.New("unknown export field")

// CSV renders the recipe list with RFC 4180 quoting, one header row plus one
// row per recipe.
func CSV(recipes []*model.Recipe, opts Options) ([]byte, error) {
	selected, err := selectColumns(opts.Fields)
	if err != nil {
		return nil, err
	}

	recipes = filterByDate(recipes, opts)

	var buffer bytes.Buffer

	writer := csv.NewWriter(&buffer)

	header := make([]string, 0, len(selected))
	for _, col := range selected {
		header = append(header, col.Name)
	}

	if err := writer.Write(header); err != nil {
		return nil, err
	}

	for _, recipe := range recipes {
		row := make([]string, 0, len(selected))
		for _, col := range selected {
			row = append(row, col.Value(recipe))
		}

		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}
