package cmd

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"brewnote.dev/BrewNote/configs"
	"brewnote.dev/BrewNote/pkg/export"
	"brewnote.dev/BrewNote/pkg/model"
	"brewnote.dev/BrewNote/pkg/repository"
)

type ExportCmd struct {
	ConfigFile string `default:".BrewNote.toml" help:"Path to config file" short:"c"`
	Format     string `default:"json"           enum:"csv,xlsx,json,html" help:"Export format" short:"f"`
	Output     string `help:"Output file"        name:"out" required:"" short:"o" type:"path"`
	Stats      bool   `help:"Include a statistics sheet (xlsx only)"`
}

func (e *ExportCmd) Run(_ *Context) error {
	logConfig := zap.NewDevelopmentConfig()
	logConfig.DisableStacktrace = true

	logger, _ := logConfig.Build()
	defer logger.Sync() //nolint:errcheck // we don't care about logger sync errors

	conf, err := configs.GetConfig(e.ConfigFile, logger)
	if err != nil {
		logger.Error("error loading config", zap.Error(err))

		return err
	}

	repo, err := repository.Open(conf, logger)
	if err != nil {
		logger.Error("error connecting to database", zap.Error(err))

		return err
	}
	defer repo.Close()

	ctx := context.Background()

	recipes, err := repo.ListRecipes(ctx, repository.RecipeFilter{})
	if err != nil {
		return err
	}

	opts := export.Options{Application: conf.Export.Application, IncludeStatistics: e.Stats}

	var payload []byte

	switch e.Format {
	case "csv":
		payload, err = export.CSV(recipes, opts)
	case "xlsx":
		var stats *model.Statistics
		if e.Stats {
			if stats, err = repo.GetStatistics(ctx); err != nil {
				return err
			}
		}

		payload, err = export.Workbook(recipes, stats, opts)
	case "html":
		payload, err = export.PrintHTML(recipes, opts)
	default:
		payload, err = export.JSON(recipes, opts)
	}

	if err != nil {
		return err
	}

	if err = os.WriteFile(e.Output, payload, 0o600); err != nil {
		return err
	}

	fmt.Printf("exported %d recipes to %s\n", len(recipes), e.Output)

	return nil
}
