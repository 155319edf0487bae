package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"brewnote.dev/BrewNote/configs"
	"brewnote.dev/BrewNote/pkg/backup"
	"brewnote.dev/BrewNote/pkg/localstore"
	"brewnote.dev/BrewNote/pkg/repository"
)

type BackupCmd struct {
	ConfigFile string `default:".BrewNote.toml" help:"Path to config file" short:"c"`
	Output     string `help:"Output file"         name:"out" required:"" short:"o" type:"path"`
}

func (b *BackupCmd) Run(_ *Context) error {
	logConfig := zap.NewDevelopmentConfig()
	logConfig.DisableStacktrace = true

	logger, _ := logConfig.Build()
	defer logger.Sync() //nolint:errcheck // we don't care about logger sync errors

	conf, err := configs.GetConfig(b.ConfigFile, logger)
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

	service := backup.NewService(conf.Export.Application, repo, localstore.NewDBStore(repo.DB), logger)

	document, err := service.Create(context.Background(), "cli")
	if err != nil {
		return err
	}

	payload, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return err
	}

	if err = os.WriteFile(b.Output, payload, 0o600); err != nil {
		return err
	}

	fmt.Printf("backup written to %s\n", b.Output)

	return nil
}
