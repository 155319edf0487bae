package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.openly.dev/pointy"
	"go.uber.org/zap"

	"brewnote.dev/BrewNote/pkg/backup"
)

type BackupServer struct {
	backups *backup.Service
	logger  *zap.Logger
}

func NewBackupServer(backups *backup.Service, logger *zap.Logger) *BackupServer {
	return &BackupServer{backups: backups, logger: logger}
}

func (s *BackupServer) Download(c *gin.Context) {
	document, err := s.backups.Create(c.Request.Context(), "api")
	if err != nil {
		s.logger.Error("backup failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "backup_failed", err)

		return
	}

	c.Header("Content-Disposition", `attachment; filename="brewnote-backup.json"`)
	c.JSON(http.StatusOK, document)
}

type restoreRequest struct {
	Backup  backup.Document `json:"backup"`
	Options struct {
		IncludeRecipes     *bool `json:"includeRecipes"`
		IncludeCollections *bool `json:"includeCollections"`
		IncludePreferences *bool `json:"includePreferences"`
		OverwriteExisting  bool  `json:"overwriteExisting"`
		SafetySnapshot     *bool `json:"safetySnapshot"`
	} `json:"options"`
}

func (s *BackupServer) Restore(c *gin.Context) {
	var request restoreRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_json", err)

		return
	}

	opts := backup.RestoreOptions{
		IncludeRecipes:     pointy.BoolValue(request.Options.IncludeRecipes, true),
		IncludeCollections: pointy.BoolValue(request.Options.IncludeCollections, true),
		IncludePreferences: pointy.BoolValue(request.Options.IncludePreferences, true),
		OverwriteExisting:  request.Options.OverwriteExisting,
		SafetySnapshot:     pointy.BoolValue(request.Options.SafetySnapshot, true),
	}

	result, err := s.backups.Restore(c.Request.Context(), &request.Backup, opts)
	if err != nil {
		if errors.Is(err, backup.ErrUnsupportedVersion) {
			respondError(c, http.StatusBadRequest, "unsupported_version", err)

			return
		}

		s.logger.Error("restore failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "restore_failed", err)

		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  result.Success(),
		"restored": result.Restored,
		"skipped":  result.Skipped,
		"errors":   result.Errors,
	})
}
