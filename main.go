package main

import (
	"errors"
	"net/http"
	"os"

	"fundnav/src/api"
	"fundnav/src/config"
	"fundnav/src/utils"
	"fundnav/src/worker"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	logger := utils.NewLogger(logrus.InfoLevel, false, "")

	cfg, err := config.LoadConfig("./settings", os.Getenv("ENV"))
	if err != nil {
		logger.WithError(err).Fatal("Error while loading config")
	}

	errC, err := run(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Couldn't run")
	}

	if err := <-errC; err != nil {
		logger.WithError(err).Error("Error while running")
	}
}

func run(cfg *config.Config, logger *logrus.Logger) (<-chan error, error) {
	errC := make(chan error, 1)

	var httpServer *http.Server
	if cfg.Service.Type == config.WORKER {
		server, err := worker.NewServer(cfg, logger)
		if err != nil {
			return nil, err
		}
		httpServer = worker.NewHTTPServer(server, cfg.Service.Port)
	} else {
		server, err := api.NewServer(cfg, logger)
		if err != nil {
			return nil, err
		}
		httpServer = api.NewHTTPServer(server, cfg.Service.Port)
	}

	go func() {
		logger.WithField("port", cfg.Service.Port).
			WithField("service", cfg.Service.Type).
			Info("Starting server")

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()
	return errC, nil
}
