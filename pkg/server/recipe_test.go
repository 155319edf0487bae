package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"brewnote.dev/BrewNote/pkg/clone"
	"brewnote.dev/BrewNote/pkg/localstore"
	"brewnote.dev/BrewNote/pkg/model"
	"brewnote.dev/BrewNote/pkg/repository"
	"brewnote.dev/BrewNote/pkg/server"
	"brewnote.dev/BrewNote/pkg/validate"
)

type fakeRecipeRepo struct {
	recipes  []*model.Recipe
	nextID   uint
	lastIDs  []uint
	replaced map[uint][]uint
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{nextID: 1, replaced: map[uint][]uint{}}
}

func (f *fakeRecipeRepo) CreateRecipe(_ context.Context, recipe *model.Recipe, collectionIDs []uint) (*model.Recipe, error) {
	recipe.ID = f.nextID
	f.nextID++
	f.lastIDs = collectionIDs
	f.recipes = append(f.recipes, recipe)

	return recipe, nil
}

func (f *fakeRecipeRepo) GetRecipeByID(_ context.Context, recipeID uint) (*model.Recipe, error) {
	for _, recipe := range f.recipes {
		if recipe.ID == recipeID {
			copied := *recipe

			return &copied, nil
		}
	}

	return nil, fmt.Errorf("%w: id %d", repository.ErrRecipeNotFound, recipeID)
}

func (f *fakeRecipeRepo) ListRecipes(_ context.Context, _ repository.RecipeFilter) ([]*model.Recipe, error) {
	return f.recipes, nil
}

func (f *fakeRecipeRepo) UpdateRecipe(_ context.Context, recipe *model.Recipe, collectionIDs *[]uint) (*model.Recipe, error) {
	for index, existing := range f.recipes {
		if existing.ID == recipe.ID {
			f.recipes[index] = recipe
			if collectionIDs != nil {
				f.lastIDs = *collectionIDs
			}

			return recipe, nil
		}
	}

	return nil, fmt.Errorf("%w: id %d", repository.ErrRecipeNotFound, recipe.ID)
}

func (f *fakeRecipeRepo) DeleteRecipe(_ context.Context, recipeID uint) error {
	for index, recipe := range f.recipes {
		if recipe.ID == recipeID {
			f.recipes = append(f.recipes[:index], f.recipes[index+1:]...)

			return nil
		}
	}

	return fmt.Errorf("%w: id %d", repository.ErrRecipeNotFound, recipeID)
}

func (f *fakeRecipeRepo) BatchDeleteRecipes(ctx context.Context, recipeIDs []uint) (int, []error) {
	var (
		deleted int
		errs    []error
	)

	for _, recipeID := range recipeIDs {
		if err := f.DeleteRecipe(ctx, recipeID); err != nil {
			errs = append(errs, err)

			continue
		}

		deleted++
	}

	return deleted, errs
}

func (f *fakeRecipeRepo) ReplaceRecipeCollections(_ context.Context, recipeID uint, collectionIDs []uint) error {
	if _, err := f.GetRecipeByID(context.Background(), recipeID); err != nil {
		return err
	}

	f.replaced[recipeID] = collectionIDs

	return nil
}

type RecipeServerTestSuite struct {
	suite.Suite
	repo   *fakeRecipeRepo
	router *gin.Engine
}

func TestRecipeServerTestSuite(t *testing.T) {
	suite.Run(t, new(RecipeServerTestSuite))
}

func (suite *RecipeServerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	validator, err := validate.New()
	suite.Require().NoError(err)

	logger := zaptest.NewLogger(suite.T())
	suite.repo = newFakeRecipeRepo()
	cloner := clone.NewCloner(suite.repo, localstore.NewMemStore(), logger)
	recipes := server.NewRecipeServer(suite.repo, validator, cloner, logger)

	suite.router = gin.New()
	suite.router.GET("/api/recipes", recipes.List)
	suite.router.POST("/api/recipes", recipes.Create)
	suite.router.GET("/api/recipes/:id", recipes.Get)
	suite.router.PUT("/api/recipes/:id", recipes.Update)
	suite.router.DELETE("/api/recipes/:id", recipes.Delete)
	suite.router.POST("/api/recipes/batch-delete", recipes.BatchDelete)
	suite.router.POST("/api/recipes/:id/clone", recipes.Clone)
	suite.router.PUT("/api/recipes/:id/collections", recipes.ReplaceCollections)
}

func (suite *RecipeServerTestSuite) perform(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	request := httptest.NewRequest(method, path, reader)
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	suite.router.ServeHTTP(recorder, request)

	return recorder
}

func (suite *RecipeServerTestSuite) seedRecipe() *model.Recipe {
	recipe := &model.Recipe{
		Model:         gorm.Model{ID: 1},
		Name:          "Morning V60",
		BrewingMethod: "V60",
		CoffeeBeansG:  25,
		WaterG:        400,
		QuickTasting:  &model.QuickTasting{Overall: 8},
	}
	recipe.Normalize()
	suite.repo.recipes = append(suite.repo.recipes, recipe)
	suite.repo.nextID = 2

	return recipe
}

func validRequestBody() map[string]any {
	return map[string]any{
		"name":          "Morning V60",
		"brewingMethod": "V60",
		"coffeeBeansG":  25,
		"waterG":        400,
		"quickTasting":  map[string]any{"aroma": 7, "flavor": 7.5, "body": 6.5, "overall": 7},
	}
}

func (suite *RecipeServerTestSuite) TestCreate_ReturnsNormalizedRecipe() {
	body := validRequestBody()
	body["collectionIds"] = []uint{4, 5}

	recorder := suite.perform(http.MethodPost, "/api/recipes", body)
	suite.Require().Equal(http.StatusCreated, recorder.Code)

	var response server.RecipeResponse
	suite.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &response))
	suite.Equal(uint(1), response.ID)
	suite.Equal("Morning V60", response.Name)
	suite.InDelta(16.0, response.CoffeeWaterRatio, 0.001)
	suite.Equal([]uint{4, 5}, suite.repo.lastIDs)
}

func (suite *RecipeServerTestSuite) TestCreate_RejectsMissingTasting() {
	body := validRequestBody()
	delete(body, "quickTasting")

	recorder := suite.perform(http.MethodPost, "/api/recipes", body)
	suite.Require().Equal(http.StatusBadRequest, recorder.Code)

	var envelope server.ErrorEnvelope
	suite.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &envelope))
	suite.Equal("invalid_input", envelope.Error.Code)
	suite.Require().Len(envelope.Fields, 1)
	suite.Equal("QuickTasting", envelope.Fields[0].Field)
}

func (suite *RecipeServerTestSuite) TestCreate_RejectsMalformedJSON() {
	request := httptest.NewRequest(http.MethodPost, "/api/recipes", bytes.NewReader([]byte("{not json")))
	recorder := httptest.NewRecorder()
	suite.router.ServeHTTP(recorder, request)

	suite.Equal(http.StatusBadRequest, recorder.Code)
}

func (suite *RecipeServerTestSuite) TestList_ReturnsCount() {
	suite.seedRecipe()

	recorder := suite.perform(http.MethodGet, "/api/recipes", nil)
	suite.Require().Equal(http.StatusOK, recorder.Code)

	var response struct {
		Recipes []server.RecipeResponse `json:"recipes"`
		Count   int                     `json:"count"`
	}
	suite.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &response))
	suite.Equal(1, response.Count)
	suite.Require().Len(response.Recipes, 1)
	suite.Equal("Morning V60", response.Recipes[0].Name)
}

func (suite *RecipeServerTestSuite) TestList_RejectsBadFavoriteFlag() {
	recorder := suite.perform(http.MethodGet, "/api/recipes?favorite=maybe", nil)
	suite.Equal(http.StatusBadRequest, recorder.Code)
}

func (suite *RecipeServerTestSuite) TestGet_NotFound() {
	recorder := suite.perform(http.MethodGet, "/api/recipes/42", nil)
	suite.Require().Equal(http.StatusNotFound, recorder.Code)

	var envelope server.ErrorEnvelope
	suite.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &envelope))
	suite.Equal("recipe_not_found", envelope.Error.Code)
}

func (suite *RecipeServerTestSuite) TestGet_RejectsBadID() {
	recorder := suite.perform(http.MethodGet, "/api/recipes/not-a-number", nil)
	suite.Equal(http.StatusBadRequest, recorder.Code)
}

func (suite *RecipeServerTestSuite) TestUpdate_PreservesIdentity() {
	seeded := suite.seedRecipe()

	body := validRequestBody()
	body["name"] = "Morning V60 v2"

	recorder := suite.perform(http.MethodPut, "/api/recipes/1", body)
	suite.Require().Equal(http.StatusOK, recorder.Code)

	var response server.RecipeResponse
	suite.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &response))
	suite.Equal(seeded.ID, response.ID)
	suite.Equal(seeded.UUID.String(), response.UUID)
	suite.Equal("Morning V60 v2", response.Name)
}

func (suite *RecipeServerTestSuite) TestDelete_RemovesRecipe() {
	suite.seedRecipe()

	recorder := suite.perform(http.MethodDelete, "/api/recipes/1", nil)
	suite.Equal(http.StatusNoContent, recorder.Code)
	suite.Empty(suite.repo.recipes)
}

func (suite *RecipeServerTestSuite) TestBatchDelete_ReportsPartialFailure() {
	suite.seedRecipe()

	recorder := suite.perform(http.MethodPost, "/api/recipes/batch-delete", map[string]any{"ids": []uint{1, 42}})
	suite.Require().Equal(http.StatusOK, recorder.Code)

	var response struct {
		Deleted int      `json:"deleted"`
		Failed  int      `json:"failed"`
		Errors  []string `json:"errors"`
	}
	suite.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &response))
	suite.Equal(1, response.Deleted)
	suite.Equal(1, response.Failed)
	suite.Require().Len(response.Errors, 1)
	suite.Contains(response.Errors[0], "42")
}

func (suite *RecipeServerTestSuite) TestClone_DefaultsToExact() {
	suite.seedRecipe()

	recorder := suite.perform(http.MethodPost, "/api/recipes/1/clone", nil)
	suite.Require().Equal(http.StatusCreated, recorder.Code)

	var response server.RecipeResponse
	suite.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &response))
	suite.Equal("Morning V60 (copy)", response.Name)
	suite.NotNil(response.QuickTasting)
}

func (suite *RecipeServerTestSuite) TestClone_NewTastingTemplate() {
	suite.seedRecipe()

	recorder := suite.perform(http.MethodPost, "/api/recipes/1/clone", map[string]any{"template": "new-tasting"})
	suite.Require().Equal(http.StatusCreated, recorder.Code)

	var response server.RecipeResponse
	suite.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &response))
	suite.Nil(response.QuickTasting)
}

func (suite *RecipeServerTestSuite) TestClone_UnknownTemplate() {
	suite.seedRecipe()

	recorder := suite.perform(http.MethodPost, "/api/recipes/1/clone", map[string]any{"template": "mystery"})
	suite.Equal(http.StatusBadRequest, recorder.Code)
}

func (suite *RecipeServerTestSuite) TestReplaceCollections_UpdatesMemberships() {
	suite.seedRecipe()

	recorder := suite.perform(http.MethodPut, "/api/recipes/1/collections", map[string]any{"collectionIds": []uint{2, 3}})
	suite.Require().Equal(http.StatusOK, recorder.Code)
	suite.Equal([]uint{2, 3}, suite.repo.replaced[1])
}
