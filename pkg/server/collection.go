package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"brewnote.dev/BrewNote/pkg/model"
	"brewnote.dev/BrewNote/pkg/repository"
	"brewnote.dev/BrewNote/pkg/validate"
)

type CollectionServer struct {
	repository repository.CollectionRepository
	validator  *validate.Validator
	logger     *zap.Logger
}

func NewCollectionServer(repo repository.CollectionRepository, validator *validate.Validator, logger *zap.Logger) *CollectionServer {
	return &CollectionServer{repository: repo, validator: validator, logger: logger}
}

type CollectionRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	Private     bool      `json:"private"`
	Tags        *[]string `json:"tags"`
}

type CollectionResponse struct {
	ID          uint      `json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"`
	Private     bool      `json:"private"`
	Tags        []string  `json:"tags"`
	RecipeCount int64     `json:"recipeCount"`
}

func collectionFromModel(collection *model.Collection, recipeCount int64) CollectionResponse {
	tags := make([]string, 0, len(collection.Tags))
	for _, tag := range collection.Tags {
		tags = append(tags, tag.Tag)
	}

	return CollectionResponse{
		ID:          collection.ID,
		CreatedAt:   collection.CreatedAt,
		Name:        collection.Name,
		Description: collection.Description,
		Color:       collection.Color,
		Private:     collection.Private,
		Tags:        tags,
		RecipeCount: recipeCount,
	}
}

func (s *CollectionServer) List(c *gin.Context) {
	summaries, err := s.repository.ListCollections(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "list_failed", err)

		return
	}

	responses := make([]CollectionResponse, 0, len(summaries))
	for _, summary := range summaries {
		collection := summary.Collection
		responses = append(responses, collectionFromModel(&collection, summary.RecipeCount))
	}

	c.JSON(http.StatusOK, gin.H{"collections": responses, "count": len(responses)})
}

func (s *CollectionServer) Get(c *gin.Context) {
	collectionID, ok := parseID(c)
	if !ok {
		return
	}

	collection, err := s.repository.GetCollectionByID(c.Request.Context(), collectionID)
	if err != nil {
		s.respondCollectionError(c, err)

		return
	}

	c.JSON(http.StatusOK, collectionFromModel(collection, 0))
}

func (s *CollectionServer) Create(c *gin.Context) {
	var request CollectionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_json", err)

		return
	}

	collection := model.Collection{
		Name:        request.Name,
		Description: request.Description,
		Color:       request.Color,
		Private:     request.Private,
	}

	if fieldErrors := s.validator.Collection(&collection); len(fieldErrors) > 0 {
		respondValidationErrors(c, fieldErrors)

		return
	}

	var tagNames []string
	if request.Tags != nil {
		tagNames = *request.Tags
	}

	created, err := s.repository.CreateCollection(c.Request.Context(), &collection, tagNames)
	if err != nil {
		s.respondCollectionError(c, err)

		return
	}

	s.logger.Info("collection created", zap.Uint("id", created.ID), zap.String("name", created.Name))
	c.JSON(http.StatusCreated, collectionFromModel(created, 0))
}

func (s *CollectionServer) Update(c *gin.Context) {
	collectionID, ok := parseID(c)
	if !ok {
		return
	}

	existing, err := s.repository.GetCollectionByID(c.Request.Context(), collectionID)
	if err != nil {
		s.respondCollectionError(c, err)

		return
	}

	var request CollectionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_json", err)

		return
	}

	collection := model.Collection{
		Model:       existing.Model,
		Name:        request.Name,
		Description: request.Description,
		Color:       request.Color,
		Private:     request.Private,
	}

	if fieldErrors := s.validator.Collection(&collection); len(fieldErrors) > 0 {
		respondValidationErrors(c, fieldErrors)

		return
	}

	updated, err := s.repository.UpdateCollection(c.Request.Context(), &collection, request.Tags)
	if err != nil {
		s.respondCollectionError(c, err)

		return
	}

	c.JSON(http.StatusOK, collectionFromModel(updated, 0))
}

// Delete removes the collection and its membership rows; recipes stay.
func (s *CollectionServer) Delete(c *gin.Context) {
	collectionID, ok := parseID(c)
	if !ok {
		return
	}

	if err := s.repository.DeleteCollection(c.Request.Context(), collectionID); err != nil {
		s.respondCollectionError(c, err)

		return
	}

	c.Status(http.StatusNoContent)
}

func (s *CollectionServer) respondCollectionError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrCollectionNotFound) {
		respondError(c, http.StatusNotFound, "collection_not_found", err)

		return
	}

	s.logger.Error("collection operation failed", zap.Error(err))
	respondError(c, http.StatusInternalServerError, "internal", err)
}
