package worker

import (
	"context"
	"net/http"
	"time"

	"fundnav/src/config"
	"fundnav/src/scheduler"
	"fundnav/src/services"
	"fundnav/src/store"
	"fundnav/src/utils"
	"fundnav/src/worker/controllers"
	"fundnav/src/worker/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Router   *chi.Mux
	Handler  *handlers.Handler
	Snapshot *scheduler.ScheduledTask
	logger   *logrus.Logger
}

func NewServer(cfg *config.Config, logger *logrus.Logger) (*Server, error) {
	repos, err := store.NewRepositories(cfg)
	if err != nil {
		return nil, err
	}

	valuationService := services.NewValuationService(
		repos.Products, repos.Strategies, repos.Weights, repos.NavRecords,
		time.Duration(cfg.Valuation.CacheTTLSeconds)*time.Second)
	controller := controllers.NewSnapshotController(repos.Products, valuationService)

	server := &Server{
		Router:  chi.NewRouter(),
		Handler: handlers.NewHandler(controller),
		logger:  logger,
	}
	server.InitRoutes()

	task, err := scheduler.NewScheduledTask(cfg.Snapshots.CronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		ctx = utils.WithLogger(ctx, logger)
		if _, err := controller.RunSnapshots(ctx); err != nil {
			logger.WithError(err).Error("scheduled snapshot run failed")
		}
	})
	if err != nil {
		return nil, err
	}
	server.Snapshot = task

	return server, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Get("/alive", handlers.Healthcheck)
	s.Router.Route("/api/snapshots", func(r chi.Router) {
		r.Post("/run", s.Handler.RunSnapshots)
	})
}

func (s *Server) Close() {
	if s.Snapshot != nil {
		s.Snapshot.Cancel()
	}
}

func NewHTTPServer(server *Server, port string) *http.Server {
	httpServer := &http.Server{
		Addr:         ":" + port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
		Handler:      server,
	}
	return httpServer
}
