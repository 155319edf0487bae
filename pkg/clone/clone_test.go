package clone_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.openly.dev/pointy"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"brewnote.dev/BrewNote/pkg/clone"
	"brewnote.dev/BrewNote/pkg/localstore"
	"brewnote.dev/BrewNote/pkg/model"
	"brewnote.dev/BrewNote/pkg/repository"
)

type fakeRecipeStore struct {
	source        *model.Recipe
	created       *model.Recipe
	collectionIDs []uint
	nextID        uint
}

func (f *fakeRecipeStore) GetRecipeByID(_ context.Context, recipeID uint) (*model.Recipe, error) {
	if f.source == nil || f.source.ID != recipeID {
		return nil, repository.ErrRecipeNotFound
	}

	recipe := *f.source

	return &recipe, nil
}

func (f *fakeRecipeStore) CreateRecipe(_ context.Context, recipe *model.Recipe, collectionIDs []uint) (*model.Recipe, error) {
	recipe.ID = f.nextID
	f.created = recipe
	f.collectionIDs = collectionIDs

	return recipe, nil
}

type CloneTestSuite struct {
	suite.Suite
	store  *fakeRecipeStore
	local  *localstore.MemStore
	cloner *clone.Cloner
}

func TestCloneTestSuite(t *testing.T) {
	suite.Run(t, new(CloneTestSuite))
}

func (suite *CloneTestSuite) SetupTest() {
	roasted := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	suite.store = &fakeRecipeStore{
		nextID: 99,
		source: &model.Recipe{
			Model:         gorm.Model{ID: 7},
			Name:          "Morning V60",
			Origin:        "Ethiopia",
			RoastDate:     &roasted,
			BrewingMethod: "V60",
			CoffeeBeansG:  25,
			WaterG:        400,
			BrewedWeightG: pointy.Float64(320),
			TDS:           pointy.Float64(1.35),
			RatingOverall: pointy.Int(8),
			QuickTasting:  &model.QuickTasting{Overall: 8},
			Collections:   []model.Collection{{Model: gorm.Model{ID: 3}, Name: "Light Roasts"}},
		},
	}
	suite.local = localstore.NewMemStore()
	suite.cloner = clone.NewCloner(suite.store, suite.local, zaptest.NewLogger(suite.T()))
}

func (suite *CloneTestSuite) TestClone_ExactKeepsEverything() {
	created, err := suite.cloner.Clone(context.Background(), 7, clone.TemplateExact, nil)
	suite.Require().NoError(err)
	suite.Equal("Morning V60 (copy)", created.Name)
	suite.Equal(uint(99), created.ID)
	suite.NotEqual(suite.store.source.UUID, created.UUID)
	suite.NotNil(created.QuickTasting)
	suite.NotNil(created.RatingOverall)
	suite.NotNil(created.RoastDate)
	suite.Equal([]uint{3}, suite.store.collectionIDs)
}

func (suite *CloneTestSuite) TestClone_NewTastingClearsSensoryData() {
	created, err := suite.cloner.Clone(context.Background(), 7, clone.TemplateNewTasting, nil)
	suite.Require().NoError(err)
	suite.Equal("Morning V60 (copy)", created.Name)
	suite.Nil(created.QuickTasting)
	suite.Nil(created.RatingOverall)
	suite.NotNil(created.RoastDate)
	suite.NotNil(created.BrewedWeightG)
}

func (suite *CloneTestSuite) TestClone_NewBagAlsoClearsRoastDate() {
	created, err := suite.cloner.Clone(context.Background(), 7, clone.TemplateNewBag, nil)
	suite.Require().NoError(err)
	suite.Equal("Morning V60 (new bag)", created.Name)
	suite.Nil(created.RoastDate)
	suite.Nil(created.QuickTasting)
}

func (suite *CloneTestSuite) TestClone_TweakClearsMeasurements() {
	created, err := suite.cloner.Clone(context.Background(), 7, clone.TemplateTweak, nil)
	suite.Require().NoError(err)
	suite.Contains(created.Name, "Morning V60 ")
	suite.Nil(created.BrewedWeightG)
	suite.Nil(created.TDS)
	suite.Nil(created.ExtractionYield)
	suite.Nil(created.QuickTasting)
}

func (suite *CloneTestSuite) TestClone_AppliesOverrides() {
	overrides := &clone.Overrides{
		Name:     pointy.String("Office Blend"),
		Notes:    pointy.String("for the second grinder"),
		Favorite: pointy.Bool(true),
	}

	created, err := suite.cloner.Clone(context.Background(), 7, clone.TemplateNewBag, overrides)
	suite.Require().NoError(err)
	suite.Equal("Office Blend", created.Name)
	suite.Equal("for the second grinder", created.Notes)
	suite.True(created.Favorite)
	suite.Nil(created.RoastDate)
}

func (suite *CloneTestSuite) TestClone_UnknownTemplate() {
	created, err := suite.cloner.Clone(context.Background(), 7, clone.Template("mystery"), nil)
	suite.Require().ErrorIs(err, clone.ErrUnknownTemplate)
	suite.Nil(created)
	suite.Nil(suite.store.created)
}

func (suite *CloneTestSuite) TestClone_MissingSource() {
	created, err := suite.cloner.Clone(context.Background(), 404, clone.TemplateExact, nil)
	suite.Require().ErrorIs(err, repository.ErrRecipeNotFound)
	suite.Nil(created)
}

func (suite *CloneTestSuite) TestClone_RecordsHistoryNewestFirst() {
	_, err := suite.cloner.Clone(context.Background(), 7, clone.TemplateExact, nil)
	suite.Require().NoError(err)
	_, err = suite.cloner.Clone(context.Background(), 7, clone.TemplateTweak, nil)
	suite.Require().NoError(err)

	history, err := suite.cloner.History(context.Background())
	suite.Require().NoError(err)
	suite.Require().Len(history, 2)
	suite.Equal(clone.TemplateTweak, history[0].Template)
	suite.Equal(clone.TemplateExact, history[1].Template)
	suite.Equal(uint(7), history[0].SourceID)
	suite.Equal(uint(99), history[0].CloneID)
}
