package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"brewnote.dev/BrewNote/configs"
	"brewnote.dev/BrewNote/pkg/auth"
	"brewnote.dev/BrewNote/pkg/backup"
	"brewnote.dev/BrewNote/pkg/clone"
	"brewnote.dev/BrewNote/pkg/localstore"
	"brewnote.dev/BrewNote/pkg/repository"
	"brewnote.dev/BrewNote/pkg/validate"
)

type Dependencies struct {
	Config     *configs.Config
	Repository *repository.Repository
	Validator  *validate.Validator
	Cloner     *clone.Cloner
	Backups    *backup.Service
	Local      localstore.Store
	Auth       *auth.Manager
	Logger     *zap.Logger
}

func NewRouter(deps Dependencies) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(deps.Logger))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	recipes := NewRecipeServer(deps.Repository, deps.Validator, deps.Cloner, deps.Logger)
	collections := NewCollectionServer(deps.Repository, deps.Validator, deps.Logger)
	exports := NewExportServer(deps.Repository, deps.Config.Export.Application, deps.Logger)
	backups := NewBackupServer(deps.Backups, deps.Logger)
	beans := NewBeanServer(deps.Config, deps.Logger)
	localState := NewLocalStateServer(deps.Local, deps.Logger)

	api := router.Group("/api", deps.Auth.Middleware())

	api.GET("/recipes", recipes.List)
	api.POST("/recipes", recipes.Create)
	api.GET("/recipes/:id", recipes.Get)
	api.PUT("/recipes/:id", recipes.Update)
	api.DELETE("/recipes/:id", recipes.Delete)
	api.POST("/recipes/batch-delete", recipes.BatchDelete)
	api.POST("/recipes/:id/clone", recipes.Clone)
	api.PUT("/recipes/:id/collections", recipes.ReplaceCollections)

	api.GET("/collections", collections.List)
	api.POST("/collections", collections.Create)
	api.GET("/collections/:id", collections.Get)
	api.PUT("/collections/:id", collections.Update)
	api.DELETE("/collections/:id", collections.Delete)

	api.GET("/export", exports.Export)
	api.GET("/backup", backups.Download)
	api.POST("/restore", backups.Restore)
	api.GET("/beans/search", beans.Search)

	api.GET("/preferences", localState.GetPreferences)
	api.PUT("/preferences", localState.PutPreferences)
	api.GET("/drafts", localState.ListDrafts)
	api.POST("/drafts", localState.SaveDraft)
	api.GET("/export-templates", localState.ListExportTemplates)
	api.POST("/export-templates", localState.SaveExportTemplate)

	return router
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}
