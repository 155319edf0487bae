package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"brewnote.dev/BrewNote/pkg/export"
	"brewnote.dev/BrewNote/pkg/model"
	"brewnote.dev/BrewNote/pkg/repository"
)

var ErrUnknownFormat = errors.New("unknown export format")

type exportRepository interface {
	ListRecipes(ctx context.Context, filter repository.RecipeFilter) ([]*model.Recipe, error)
	GetStatistics(ctx context.Context) (*model.Statistics, error)
}

type ExportServer struct {
	repository  exportRepository
	application string
	logger      *zap.Logger
}

func NewExportServer(repo exportRepository, application string, logger *zap.Logger) *ExportServer {
	return &ExportServer{repository: repo, application: application, logger: logger}
}

// Export renders the journal in the requested format. Any failure aborts the
// whole export.
func (s *ExportServer) Export(c *gin.Context) {
	opts, err := parseExportOptions(c, s.application)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_query", err)

		return
	}

	recipes, err := s.repository.ListRecipes(c.Request.Context(), repository.RecipeFilter{})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "export_failed", err)

		return
	}

	format := c.DefaultQuery("format", "json")

	var (
		payload     []byte
		contentType string
		extension   string
	)

	switch format {
	case "csv":
		payload, err = export.CSV(recipes, opts)
		contentType, extension = "text/csv", "csv"
	case "xlsx":
		var stats *model.Statistics
		if opts.IncludeStatistics {
			if stats, err = s.repository.GetStatistics(c.Request.Context()); err != nil {
				respondError(c, http.StatusInternalServerError, "export_failed", err)

				return
			}
		}

		payload, err = export.Workbook(recipes, stats, opts)
		contentType, extension = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx"
	case "json":
		payload, err = export.JSON(recipes, opts)
		contentType, extension = "application/json", "json"
	case "html":
		payload, err = export.PrintHTML(recipes, opts)
		contentType, extension = "text/html; charset=utf-8", "html"
	default:
		respondError(c, http.StatusBadRequest, "unknown_format", fmt.Errorf("%w: %q", ErrUnknownFormat, format))

		return
	}

	if err != nil {
		if errors.Is(err, export.ErrUnknownField) {
			respondError(c, http.StatusBadRequest, "unknown_field", err)

			return
		}

		s.logger.Error("export failed", zap.String("format", format), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "export_failed", err)

		return
	}

	filename := fmt.Sprintf("brewnote-export-%s.%s", time.Now().Format("2006-01-02"), extension)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, payload)
}

func parseExportOptions(c *gin.Context, application string) (export.Options, error) {
	opts := export.Options{Application: application}

	if fields := c.Query("fields"); fields != "" {
		opts.Fields = strings.Split(fields, ",")
	}

	for query, target := range map[string]**time.Time{"from": &opts.From, "to": &opts.To} {
		if raw := c.Query(query); raw != "" {
			parsed, err := time.Parse("2006-01-02", raw)
			if err != nil {
				return opts, err
			}

			*target = &parsed
		}
	}

	if raw := c.Query("stats"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return opts, err
		}

		opts.IncludeStatistics = value
	}

	if raw := c.Query("groupByCollection"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return opts, err
		}

		opts.GroupByCollection = value
	}

	return opts, nil
}
