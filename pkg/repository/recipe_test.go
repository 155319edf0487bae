package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/suite"
	"go.openly.dev/pointy"
	"gorm.io/gorm"

	"brewnote.dev/BrewNote/pkg/model"
	"brewnote.dev/BrewNote/pkg/repository"
)

type RecipeTestSuite struct {
	RepositorySuite
}

func TestRecipeTestSuite(t *testing.T) {
	suite.Run(t, new(RecipeTestSuite))
}

func (suite *RecipeTestSuite) TestGetRecipeByID_ReturnsNotFound() {
	suite.mock.ExpectQuery("^SELECT (.+)").WillReturnError(gorm.ErrRecordNotFound)

	recipe, err := suite.repository.GetRecipeByID(context.Background(), 42)
	suite.Require().ErrorIs(err, repository.ErrRecipeNotFound)
	suite.Nil(recipe)
}

func (suite *RecipeTestSuite) TestGetRecipeByID_PreloadsCollections() {
	suite.mock.ExpectQuery(`^SELECT (.+) FROM "recipes" (.+)`).
		WithArgs(42, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "origin"}).AddRow(uint(42), "Morning V60", "Ethiopia"))
	suite.mock.ExpectQuery(`^SELECT (.+) FROM "recipe_collections" (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"recipe_id", "collection_id"}))

	recipe, err := suite.repository.GetRecipeByID(context.Background(), 42)
	suite.Require().NoError(err)
	suite.Equal("Morning V60", recipe.Name)
	suite.Equal("Ethiopia", recipe.Origin)
	suite.Empty(recipe.Collections)
}

func (suite *RecipeTestSuite) TestListRecipes_AppliesFilters() {
	suite.mock.ExpectQuery(`^SELECT (.+) FROM "recipes" (.+)favorite(.+)brewing_method(.+)`).
		WithArgs(true, "V60").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(uint(1), "Morning V60").AddRow(uint(2), "Weekend V60"))
	suite.mock.ExpectQuery(`^SELECT (.+) FROM "recipe_collections" (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"recipe_id", "collection_id"}))

	filter := repository.RecipeFilter{Favorite: pointy.Bool(true), BrewingMethod: "V60"}

	recipes, err := suite.repository.ListRecipes(context.Background(), filter)
	suite.Require().NoError(err)
	suite.Len(recipes, 2)
	suite.Equal("Morning V60", recipes[0].Name)
	suite.Equal("Weekend V60", recipes[1].Name)
}

func (suite *RecipeTestSuite) TestListRecipes_ReturnsErrorAndLogs() {
	suite.mock.ExpectQuery("^SELECT (.+)").WillReturnError(errors.New("connection refused"))

	recipes, err := suite.repository.ListRecipes(context.Background(), repository.RecipeFilter{})
	suite.Require().Error(err)
	suite.Nil(recipes)
	suite.GreaterOrEqual(suite.observedLogs.Len(), 1)
}

func (suite *RecipeTestSuite) TestCreateRecipe_InsertsAndReloads() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`^INSERT INTO "recipes" (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uint(7)))
	suite.mock.ExpectExec(`^DELETE FROM "recipe_collections" (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	suite.mock.ExpectCommit()
	suite.mock.ExpectQuery(`^SELECT (.+) FROM "recipes" (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(uint(7), "Morning V60"))
	suite.mock.ExpectQuery(`^SELECT (.+) FROM "recipe_collections" (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"recipe_id", "collection_id"}))

	recipe := model.Recipe{Name: "Morning V60", BrewingMethod: "V60", CoffeeBeansG: 25, WaterG: 400}

	created, err := suite.repository.CreateRecipe(context.Background(), &recipe, nil)
	suite.Require().NoError(err)
	suite.Equal(uint(7), created.ID)
	suite.Equal("Morning V60", created.Name)
}

func (suite *RecipeTestSuite) TestReplaceRecipeCollections_UnknownCollection() {
	suite.mock.ExpectQuery(`^SELECT (.+) FROM "recipes" (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(uint(1), "Morning V60"))
	suite.mock.ExpectQuery(`^SELECT (.+) FROM "recipe_collections" (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"recipe_id", "collection_id"}))
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`^SELECT (.+) FROM "collections" (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))
	suite.mock.ExpectRollback()

	err := suite.repository.ReplaceRecipeCollections(context.Background(), 1, []uint{99})
	suite.Require().ErrorIs(err, repository.ErrCollectionNotFound)
}

func (suite *RecipeTestSuite) TestDeleteRecipe_ReturnsNotFound() {
	suite.mock.ExpectQuery("^SELECT (.+)").WillReturnError(gorm.ErrRecordNotFound)

	err := suite.repository.DeleteRecipe(context.Background(), 42)
	suite.Require().ErrorIs(err, repository.ErrRecipeNotFound)
}

func (suite *RecipeTestSuite) TestBatchDeleteRecipes_ReportsFailures() {
	suite.mock.ExpectQuery("^SELECT (.+)").WillReturnError(gorm.ErrRecordNotFound)
	suite.mock.ExpectQuery("^SELECT (.+)").WillReturnError(gorm.ErrRecordNotFound)

	deleted, errs := suite.repository.BatchDeleteRecipes(context.Background(), []uint{1, 2})
	suite.Equal(0, deleted)
	suite.Len(errs, 2)
	suite.Require().Error(repository.ErrorList(errs))
}
