package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"brewnote.dev/BrewNote/configs"
	"brewnote.dev/BrewNote/pkg/integrations"
	"brewnote.dev/BrewNote/pkg/model"
)

type BeanServer struct {
	config *configs.Config
	logger *zap.Logger
}

func NewBeanServer(config *configs.Config, logger *zap.Logger) *BeanServer {
	return &BeanServer{config: config, logger: logger}
}

// Search queries every configured bean integration and merges the results.
// A failing integration is logged and skipped, not fatal.
func (s *BeanServer) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		respondError(c, http.StatusBadRequest, "missing_query", ErrInvalidInput)

		return
	}

	var beans []model.BeanInfo

	for _, name := range s.config.Integrations.Bean {
		integration := integrations.GetIntegration(name, s.logger)
		if integration == nil {
			s.logger.Warn("unknown bean integration configured", zap.String("integration", name))

			continue
		}

		found, err := integration.FindBean(query)
		if err != nil {
			s.logger.Error("failed bean search", zap.String("integration", name), zap.Error(err))

			continue
		}

		beans = append(beans, found...)
	}

	c.JSON(http.StatusOK, gin.H{"beans": beans, "count": len(beans)})
}
