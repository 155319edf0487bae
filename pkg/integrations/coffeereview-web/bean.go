package coffeereviewweb

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/gocolly/colly/v2"
	"go.openly.dev/pointy"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"brewnote.dev/BrewNote/pkg/model"
)

type BeanScraped struct {
	Rating  string `selector:".review-template-rating"`
	Roaster string `selector:".review-roaster"`
	Name    string `selector:".review-title"`
	Link    string `attr:"href" selector:".review-title a"`
	Origin  string `selector:".review-col2 .row:first-child .col2"`
	Roast   string `selector:".review-col2 .row:nth-child(2) .col2"`
	Notes   string `selector:".row-2 p"`
}

// FindBean scrapes the review search results for the query and maps each
// review onto a BeanInfo. Individual scrape failures are accumulated; the
// results collected so far are returned alongside them.
func (c *CoffeeReviewWebIntegration) FindBean(query string) ([]model.BeanInfo, error) {
	collector := colly.NewCollector(
		colly.AllowedDomains("www.coffeereview.com", "coffeereview.com"),
		colly.UserAgent("Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:15.0) Gecko/20100101 Firefox/15.0.1"),
	)

	var (
		errs    error
		results []model.BeanInfo
	)

	collector.OnHTML(".review-template", func(element *colly.HTMLElement) {
		scraped := BeanScraped{}

		err := element.Unmarshal(&scraped)
		if multierr.AppendInto(&errs, err) {
			c.logger.Error("failed to unmarshal scraped review", zap.Error(err))

			return
		}

		c.logger.Info("successfully scraped review", zap.String("name", scraped.Name), zap.String("roaster", scraped.Roaster))

		results = append(results, model.BeanInfo{
			Name:       strings.TrimSpace(scraped.Name),
			Roaster:    strings.TrimSpace(scraped.Roaster),
			Origin:     strings.TrimSpace(scraped.Origin),
			RoastLevel: strings.ToLower(strings.TrimSpace(scraped.Roast)),
			Rating:     extractRating(scraped),
			Notes:      strings.TrimSpace(scraped.Notes),
			URL:        element.Request.AbsoluteURL(scraped.Link),
		})
	})

	collector.OnError(func(response *colly.Response, err error) {
		c.logger.Error("error while scraping bean search results", zap.String("url", response.Request.URL.String()), zap.Error(err))
	})

	c.logger.Info("scraping query results", zap.String("query", query))
	multierr.AppendInto(&errs, collector.Visit("https://www.coffeereview.com/?s="+url.QueryEscape(query)))

	return results, errs
}

func extractRating(scraped BeanScraped) *float64 {
	rating, err := strconv.ParseFloat(strings.TrimSpace(scraped.Rating), 64)
	if err != nil {
		return nil
	}

	return pointy.Float64(rating)
}
