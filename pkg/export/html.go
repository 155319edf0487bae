package export

import (
	"bytes"
	"html/template"
	"time"

	"brewnote.dev/BrewNote/pkg/model"
)

const printTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Application}} — brew journal</title>
<style>
body { font-family: Georgia, serif; margin: 2rem; color: #222; }
h1 { border-bottom: 2px solid #6f4e37; padding-bottom: .3rem; }
section.recipe { page-break-inside: avoid; border-bottom: 1px solid #ccc; padding: 1rem 0; }
section.recipe h2 { margin: 0 0 .4rem 0; }
dl { display: grid; grid-template-columns: 12rem auto; row-gap: .15rem; }
dt { font-weight: bold; }
p.notes { white-space: pre-wrap; }
@media print { body { margin: 0; } }
</style>
</head>
<body>
<h1>{{.Application}} — brew journal</h1>
<p>{{len .Recipes}} recipes, exported {{.ExportedAt.Format "2006-01-02 15:04"}}</p>
{{range .Recipes}}
<section class="recipe">
<h2>{{.Name}}{{if .Favorite}} ★{{end}}</h2>
<dl>
{{if .Origin}}<dt>Origin</dt><dd>{{.Origin}} {{.ProcessingMethod}}</dd>{{end}}
{{if .RoastLevel}}<dt>Roast</dt><dd>{{.RoastLevel}}</dd>{{end}}
{{if .BrewingMethod}}<dt>Method</dt><dd>{{.BrewingMethod}}</dd>{{end}}
<dt>Dose</dt><dd>{{.CoffeeBeansG}} g coffee, {{.WaterG}} g water (1:{{.CoffeeWaterRatio}})</dd>
{{if .ExtractionYield}}<dt>Extraction yield</dt><dd>{{.ExtractionYield}} %</dd>{{end}}
{{if .TraditionalSCA}}<dt>SCA score</dt><dd>{{.TraditionalSCA.FinalScore}}</dd>{{end}}
{{if .CVAAffective}}<dt>CVA score</dt><dd>{{.CVAAffective.Score}}</dd>{{end}}
{{if .RatingOverall}}<dt>Overall rating</dt><dd>{{.RatingOverall}}/10</dd>{{end}}
</dl>
{{if .Notes}}<p class="notes">{{.Notes}}</p>{{end}}
</section>
{{end}}
</body>
</html>
`

var printPage = template.Must(template.New("print").Parse(printTemplate))

// PrintHTML renders a standalone print-ready document, one section per
// recipe.
func PrintHTML(recipes []*model.Recipe, opts Options) ([]byte, error) {
	recipes = filterByDate(recipes, opts)

	var buffer bytes.Buffer

	err := printPage.Execute(&buffer, struct {
		Application string
		ExportedAt  time.Time
		Recipes     []*model.Recipe
	}{
		Application: opts.Application,
		ExportedAt:  time.Now(),
		Recipes:     recipes,
	})
	if err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}
