package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"brewnote.dev/BrewNote/configs"
	"brewnote.dev/BrewNote/pkg/auth"
	"brewnote.dev/BrewNote/pkg/backup"
	"brewnote.dev/BrewNote/pkg/clone"
	"brewnote.dev/BrewNote/pkg/localstore"
	"brewnote.dev/BrewNote/pkg/repository"
	"brewnote.dev/BrewNote/pkg/server"
	"brewnote.dev/BrewNote/pkg/validate"
)

const timeout = 5 * time.Second

type ServeCmd struct {
	ConfigFile string `default:".BrewNote.toml" help:"Path to config file" short:"c"`
}

func (s *ServeCmd) Run(_ *Context) error {
	logConfig := zap.NewProductionConfig()

	logger, _ := logConfig.Build()
	defer logger.Sync() //nolint:errcheck // we don't care about logger sync errors

	conf, err := configs.GetConfig(s.ConfigFile, logger)
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

	validator, err := validate.New()
	if err != nil {
		logger.Error("error building validator", zap.Error(err))

		return err
	}

	local := localstore.NewDBStore(repo.DB)

	router := server.NewRouter(server.Dependencies{
		Config:     conf,
		Repository: repo,
		Validator:  validator,
		Cloner:     clone.NewCloner(repo, local, logger),
		Backups:    backup.NewService(conf.Export.Application, repo, local, logger),
		Local:      local,
		Auth:       auth.NewAuthManager(conf, logger),
		Logger:     logger,
	})

	address := fmt.Sprintf(":%d", conf.Server.Port)

	corsHandler := configureCORS(router)
	serverHandler := h2c.NewHandler(corsHandler, &http2.Server{})

	svr := &http.Server{
		Addr:              address,
		ReadHeaderTimeout: timeout,
		Handler:           serverHandler,
	}

	err = svr.ListenAndServe()
	if err != nil {
		logger.Error("failed to start server", zap.Error(err))

		return err
	}

	return nil
}

func configureCORS(handler http.Handler) http.Handler {
	corsOpts := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD", "PATCH"},
		AllowedHeaders: []string{
			"accept",
			"accept-encoding",
			"accept-language",
			"authorization",
			"cache-control",
			"content-encoding",
			"content-length",
			"content-type",
			"date",
			"keep-alive",
			"origin",
			"referer",
			"user-agent",
		},
		ExposedHeaders: []string{
			"content-disposition",
		},
		MaxAge:             86400, // 24 hours
		OptionsPassthrough: false, // Handle OPTIONS requests in CORS middleware
	})

	return corsOpts.Handler(handler)
}
