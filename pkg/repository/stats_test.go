package repository_test

import (
	"context"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm/schema"

	"brewnote.dev/BrewNote/pkg/model"
)

type StatsTestSuite struct {
	RepositorySuite
}

func TestStatsTestSuite(t *testing.T) {
	suite.Run(t, new(StatsTestSuite))
}

func (suite *StatsTestSuite) TestGetStatistics_AggregatesAndRounds() {
	suite.mock.ExpectQuery(`^SELECT (.+)traditional_sca ->> 'finalScore'(.+)cva_affective ->> 'score'(.+) FROM "recipes" (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{
			"recipe_count", "favorite_count", "distinct_origins", "distinct_methods",
			"average_ratio", "average_extraction", "average_tds",
			"average_traditional_score", "average_cva_score",
			"best_traditional_score", "best_cva_score",
		}).AddRow(int64(12), int64(3), int64(5), int64(2), 16.4567, 19.333, 1.3811, 84.333, 81.125, 87.25, 84.5))
	suite.mock.ExpectQuery(`^SELECT count\(\*\) FROM "collections" (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(4)))

	stats, err := suite.repository.GetStatistics(context.Background())
	suite.Require().NoError(err)
	suite.Equal(int64(12), stats.RecipeCount)
	suite.Equal(int64(3), stats.FavoriteCount)
	suite.Equal(int64(5), stats.DistinctOrigins)
	suite.Equal(int64(2), stats.DistinctMethods)
	suite.Equal(int64(4), stats.CollectionCount)
	suite.InDelta(16.46, stats.AverageRatio, 0.001)
	suite.InDelta(19.33, stats.AverageExtraction, 0.001)
	suite.InDelta(1.38, stats.AverageTDS, 0.001)
	suite.InDelta(84.33, stats.AverageTraditionalScore, 0.001)
	suite.InDelta(81.13, stats.AverageCVAScore, 0.001)
	suite.InDelta(87.25, stats.BestTraditionalScore, 0.001)
	suite.InDelta(84.5, stats.BestCVAScore, 0.001)
}

// The aggregate applies ->> directly to the sensory columns, which only works
// when they migrate as jsonb instead of the serializer default of text.
func (suite *StatsTestSuite) TestSensoryColumnsMigrateAsJSONB() {
	parsed, err := schema.Parse(&model.Recipe{}, &sync.Map{}, schema.NamingStrategy{})
	suite.Require().NoError(err)

	for _, name := range []string{"TraditionalSCA", "CVADescriptive", "CVAAffective", "QuickTasting"} {
		field := parsed.LookUpField(name)
		suite.Require().NotNil(field, name)
		suite.Equal("jsonb", string(field.DataType), name)
	}
}
