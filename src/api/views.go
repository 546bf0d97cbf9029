package api

import (
	"net/http"
	"time"

	"fundnav/src/api/controllers"
	handlers "fundnav/src/api/handlers"
	"fundnav/src/config"
	"fundnav/src/services"
	"fundnav/src/store"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Router  *chi.Mux
	Handler *handlers.Handler
	logger  *logrus.Logger
}

func NewServer(cfg *config.Config, logger *logrus.Logger) (*Server, error) {
	repos, err := store.NewRepositories(cfg)
	if err != nil {
		return nil, err
	}

	valuationService := services.NewValuationService(
		repos.Products, repos.Strategies, repos.Weights, repos.NavRecords,
		time.Duration(cfg.Valuation.CacheTTLSeconds)*time.Second)
	navService := services.NewNavService(
		repos.Strategies, repos.NavRecords, repos.Weights, valuationService)
	investmentService := services.NewInvestmentService(
		repos.Investors, repos.Products, repos.Investments, valuationService,
		cfg.Investments.RejectOverRedemption)

	handler := handlers.NewHandler(
		controllers.NewStrategiesController(repos.Strategies, navService),
		controllers.NewProductsController(repos.Products, valuationService),
		controllers.NewInvestmentsController(repos.Investors, investmentService),
		controllers.NewDashboardController(
			repos.Strategies, repos.Products, repos.Investors, repos.Investments, valuationService),
	)

	server := &Server{
		Router:  chi.NewRouter(),
		Handler: handler,
		logger:  logger,
	}
	server.InitRoutes()
	return server, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Use(RequestLogger(s.logger))
	s.Router.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}).Handler)

	s.Router.Get("/alive", handlers.Healthcheck)

	s.Router.Route("/api/strategies", func(r chi.Router) {
		r.Get("/", s.Handler.GetAllStrategies)
		r.Post("/", s.Handler.CreateStrategy)
		r.Get("/{id}", s.Handler.GetStrategyByID)
		r.Post("/{id}/navs", s.Handler.RecordNav)
	})

	s.Router.Get("/api/navs", s.Handler.GetNavRecords)

	s.Router.Route("/api/products", func(r chi.Router) {
		r.Get("/", s.Handler.GetAllProducts)
		r.Post("/", s.Handler.CreateProduct)
		r.Get("/{id}", s.Handler.GetProductByID)
		r.Put("/{id}/weights", s.Handler.SetProductWeights)
		r.Get("/{id}/weights", s.Handler.GetProductWeights)
		r.Get("/{id}/nav", s.Handler.GetProductNav)
		r.Get("/{id}/nav-history", s.Handler.GetProductNavHistory)
	})

	s.Router.Route("/api/investors", func(r chi.Router) {
		r.Get("/", s.Handler.GetAllInvestors)
		r.Post("/", s.Handler.CreateInvestor)
		r.Get("/{id}/portfolio", s.Handler.GetPortfolio)
	})

	s.Router.Route("/api/investments", func(r chi.Router) {
		r.Get("/", s.Handler.GetInvestments)
		r.Post("/", s.Handler.RecordInvestment)
	})

	s.Router.Get("/api/dashboard", s.Handler.GetDashboard)
}

func NewHTTPServer(server *Server, port string) *http.Server {
	httpServer := &http.Server{
		Addr:         ":" + port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Handler:      server,
	}
	return httpServer
}
