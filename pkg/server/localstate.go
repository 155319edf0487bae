package server

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"brewnote.dev/BrewNote/pkg/localstore"
)

// LocalStateServer exposes the state the app keeps outside the main schema:
// preferences, in-progress recipe drafts and saved export templates. Values
// are opaque JSON; the list-valued keys are bounded on write.
type LocalStateServer struct {
	store  localstore.Store
	logger *zap.Logger
}

func NewLocalStateServer(store localstore.Store, logger *zap.Logger) *LocalStateServer {
	return &LocalStateServer{store: store, logger: logger}
}

func (s *LocalStateServer) GetPreferences(c *gin.Context) {
	preferences := map[string]any{}

	if _, err := s.store.Get(c.Request.Context(), localstore.KeyPreferences, &preferences); err != nil {
		s.logger.Error("error reading preferences", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "local_state_failed", err)

		return
	}

	c.JSON(http.StatusOK, preferences)
}

func (s *LocalStateServer) PutPreferences(c *gin.Context) {
	var preferences map[string]any
	if err := c.ShouldBindJSON(&preferences); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_body", err)

		return
	}

	if err := s.store.Put(c.Request.Context(), localstore.KeyPreferences, preferences); err != nil {
		s.logger.Error("error saving preferences", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "local_state_failed", err)

		return
	}

	c.JSON(http.StatusOK, preferences)
}

func (s *LocalStateServer) ListDrafts(c *gin.Context) {
	s.list(c, localstore.KeyDrafts, "drafts")
}

func (s *LocalStateServer) SaveDraft(c *gin.Context) {
	s.push(c, localstore.KeyDrafts, "drafts", localstore.DraftLimit)
}

func (s *LocalStateServer) ListExportTemplates(c *gin.Context) {
	s.list(c, localstore.KeyExportTemplates, "templates")
}

func (s *LocalStateServer) SaveExportTemplate(c *gin.Context) {
	s.push(c, localstore.KeyExportTemplates, "templates", localstore.ExportTemplateLimit)
}

func (s *LocalStateServer) list(c *gin.Context, key string, field string) {
	items := []json.RawMessage{}

	if _, err := s.store.Get(c.Request.Context(), key, &items); err != nil {
		s.logger.Error("error reading local state", zap.String("key", key), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "local_state_failed", err)

		return
	}

	c.JSON(http.StatusOK, gin.H{field: items, "count": len(items)})
}

func (s *LocalStateServer) push(c *gin.Context, key string, field string, limit int) {
	var item json.RawMessage
	if err := c.ShouldBindJSON(&item); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_body", err)

		return
	}

	items, err := localstore.PushBounded(c.Request.Context(), s.store, key, item, limit)
	if err != nil {
		s.logger.Error("error saving local state", zap.String("key", key), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "local_state_failed", err)

		return
	}

	c.JSON(http.StatusOK, gin.H{field: items, "count": len(items)})
}
