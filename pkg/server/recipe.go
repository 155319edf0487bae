package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.openly.dev/pointy"
	"go.uber.org/zap"

	"brewnote.dev/BrewNote/pkg/clone"
	"brewnote.dev/BrewNote/pkg/repository"
	"brewnote.dev/BrewNote/pkg/validate"
)

var ErrInvalidInput = errors.New("bad request")

type RecipeServer struct {
	repository repository.RecipeRepository
	validator  *validate.Validator
	cloner     *clone.Cloner
	logger     *zap.Logger
}

func NewRecipeServer(repo repository.RecipeRepository, validator *validate.Validator, cloner *clone.Cloner, logger *zap.Logger) *RecipeServer {
	return &RecipeServer{repository: repo, validator: validator, cloner: cloner, logger: logger}
}

func (s *RecipeServer) List(c *gin.Context) {
	filter, err := parseRecipeFilter(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_query", err)

		return
	}

	recipes, err := s.repository.ListRecipes(c.Request.Context(), filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "list_failed", err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": RecipesFromModel(recipes), "count": len(recipes)})
}

func (s *RecipeServer) Get(c *gin.Context) {
	recipeID, ok := parseID(c)
	if !ok {
		return
	}

	recipe, err := s.repository.GetRecipeByID(c.Request.Context(), recipeID)
	if err != nil {
		s.respondRecipeError(c, err)

		return
	}

	c.JSON(http.StatusOK, RecipeFromModel(recipe))
}

func (s *RecipeServer) Create(c *gin.Context) {
	var request RecipeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_json", err)

		return
	}

	recipe := RecipeToModel(request)
	recipe.Normalize()

	if fieldErrors := s.validator.Recipe(&recipe); len(fieldErrors) > 0 {
		respondValidationErrors(c, fieldErrors)

		return
	}

	var collectionIDs []uint
	if request.CollectionIDs != nil {
		collectionIDs = *request.CollectionIDs
	}

	created, err := s.repository.CreateRecipe(c.Request.Context(), &recipe, collectionIDs)
	if err != nil {
		s.respondRecipeError(c, err)

		return
	}

	s.logger.Info("recipe created", zap.Uint("id", created.ID), zap.String("name", created.Name))
	c.JSON(http.StatusCreated, RecipeFromModel(created))
}

// Update is a full replace of the mutable fields; id, uuid and creation time
// survive from the stored row.
func (s *RecipeServer) Update(c *gin.Context) {
	recipeID, ok := parseID(c)
	if !ok {
		return
	}

	existing, err := s.repository.GetRecipeByID(c.Request.Context(), recipeID)
	if err != nil {
		s.respondRecipeError(c, err)

		return
	}

	var request RecipeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_json", err)

		return
	}

	recipe := RecipeToModel(request)
	recipe.Model = existing.Model
	recipe.UUID = existing.UUID
	recipe.Normalize()

	if fieldErrors := s.validator.Recipe(&recipe); len(fieldErrors) > 0 {
		respondValidationErrors(c, fieldErrors)

		return
	}

	updated, err := s.repository.UpdateRecipe(c.Request.Context(), &recipe, request.CollectionIDs)
	if err != nil {
		s.respondRecipeError(c, err)

		return
	}

	c.JSON(http.StatusOK, RecipeFromModel(updated))
}

func (s *RecipeServer) Delete(c *gin.Context) {
	recipeID, ok := parseID(c)
	if !ok {
		return
	}

	if err := s.repository.DeleteRecipe(c.Request.Context(), recipeID); err != nil {
		s.respondRecipeError(c, err)

		return
	}

	c.Status(http.StatusNoContent)
}

type batchDeleteRequest struct {
	IDs []uint `json:"ids"`
}

func (s *RecipeServer) BatchDelete(c *gin.Context) {
	var request batchDeleteRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_json", err)

		return
	}

	deleted, errs := s.repository.BatchDeleteRecipes(c.Request.Context(), request.IDs)

	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		messages = append(messages, err.Error())
	}

	if len(errs) > 0 {
		s.logger.Warn("batch delete finished with errors",
			zap.Int("deleted", deleted), zap.Error(repository.ErrorList(errs)))
	}

	c.JSON(http.StatusOK, gin.H{
		"deleted": deleted,
		"failed":  len(errs),
		"errors":  messages,
	})
}

type cloneRequest struct {
	Template  string           `json:"template"`
	Overrides *clone.Overrides `json:"overrides"`
}

func (s *RecipeServer) Clone(c *gin.Context) {
	recipeID, ok := parseID(c)
	if !ok {
		return
	}

	request := cloneRequest{Template: string(clone.TemplateExact)}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&request); err != nil {
			respondError(c, http.StatusBadRequest, "invalid_json", err)

			return
		}
	}

	created, err := s.cloner.Clone(c.Request.Context(), recipeID, clone.Template(request.Template), request.Overrides)
	if err != nil {
		if errors.Is(err, clone.ErrUnknownTemplate) {
			respondError(c, http.StatusBadRequest, "unknown_template", err)

			return
		}

		s.respondRecipeError(c, err)

		return
	}

	c.JSON(http.StatusCreated, RecipeFromModel(created))
}

type replaceCollectionsRequest struct {
	CollectionIDs []uint `json:"collectionIds"`
}

func (s *RecipeServer) ReplaceCollections(c *gin.Context) {
	recipeID, ok := parseID(c)
	if !ok {
		return
	}

	var request replaceCollectionsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_json", err)

		return
	}

	if err := s.repository.ReplaceRecipeCollections(c.Request.Context(), recipeID, request.CollectionIDs); err != nil {
		s.respondRecipeError(c, err)

		return
	}

	recipe, err := s.repository.GetRecipeByID(c.Request.Context(), recipeID)
	if err != nil {
		s.respondRecipeError(c, err)

		return
	}

	c.JSON(http.StatusOK, RecipeFromModel(recipe))
}

func (s *RecipeServer) respondRecipeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrRecipeNotFound):
		respondError(c, http.StatusNotFound, "recipe_not_found", err)
	case errors.Is(err, repository.ErrCollectionNotFound):
		respondError(c, http.StatusBadRequest, "collection_not_found", err)
	default:
		s.logger.Error("recipe operation failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "internal", err)
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_id", ErrInvalidInput)

		return 0, false
	}

	return uint(id), true
}

func parseRecipeFilter(c *gin.Context) (repository.RecipeFilter, error) {
	filter := repository.RecipeFilter{
		Query:         strings.TrimSpace(c.Query("q")),
		BrewingMethod: c.Query("method"),
		Origin:        c.Query("origin"),
	}

	if favorite := c.Query("favorite"); favorite != "" {
		value, err := strconv.ParseBool(favorite)
		if err != nil {
			return filter, err
		}

		filter.Favorite = pointy.Bool(value)
	}

	if collectionID := c.Query("collectionId"); collectionID != "" {
		value, err := strconv.ParseUint(collectionID, 10, 32)
		if err != nil {
			return filter, err
		}

		filter.CollectionID = pointy.Uint(uint(value))
	}

	for query, target := range map[string]**time.Time{
		"roastedAfter":  &filter.RoastedAfter,
		"roastedBefore": &filter.RoastedBefore,
	} {
		if raw := c.Query(query); raw != "" {
			parsed, err := time.Parse("2006-01-02", raw)
			if err != nil {
				return filter, err
			}

			*target = &parsed
		}
	}

	if limit := c.Query("limit"); limit != "" {
		value, err := strconv.Atoi(limit)
		if err != nil {
			return filter, err
		}

		filter.Limit = value
	}

	if offset := c.Query("offset"); offset != "" {
		value, err := strconv.Atoi(offset)
		if err != nil {
			return filter, err
		}

		filter.Offset = value
	}

	return filter, nil
}
