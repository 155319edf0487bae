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

type RestoreCmd struct {
	ConfigFile   string `default:".BrewNote.toml" help:"Path to config file" short:"c"`
	Input        string `help:"Backup file" name:"in" required:"" short:"i" type:"existingfile"`
	Overwrite    bool   `help:"Overwrite recipes and collections that already exist"`
	SkipSnapshot bool   `help:"Skip the pre-restore safety snapshot"`
}

func (r *RestoreCmd) Run(_ *Context) error {
	logConfig := zap.NewDevelopmentConfig()
	logConfig.DisableStacktrace = true

	logger, _ := logConfig.Build()
	defer logger.Sync() //nolint:errcheck // we don't care about logger sync errors

	conf, err := configs.GetConfig(r.ConfigFile, logger)
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

	payload, err := os.ReadFile(r.Input)
	if err != nil {
		return err
	}

	var document backup.Document
	if err = json.Unmarshal(payload, &document); err != nil {
		return err
	}

	service := backup.NewService(conf.Export.Application, repo, localstore.NewDBStore(repo.DB), logger)

	opts := backup.DefaultRestoreOptions()
	opts.OverwriteExisting = r.Overwrite
	opts.SafetySnapshot = !r.SkipSnapshot

	result, err := service.Restore(context.Background(), &document, opts)
	if err != nil {
		return err
	}

	fmt.Printf("restored %d, skipped %d, %d errors\n", result.Restored, result.Skipped, len(result.Errors))

	return nil
}
