package store

import (
	"fmt"

	"fundnav/src/clients/reststore"
	"fundnav/src/config"
	"fundnav/src/database"
	"fundnav/src/repositories"
)

// Repositories bundles one concrete store implementation of every
// repository. The backend is fixed at startup by configuration; there is no
// runtime fallback from one backend to another.
type Repositories struct {
	Strategies  repositories.StrategyRepository
	NavRecords  repositories.NavRecordRepository
	Weights     repositories.WeightRepository
	Products    repositories.ProductRepository
	Investors   repositories.InvestorRepository
	Investments repositories.InvestmentRepository
}

func NewRepositories(cfg *config.Config) (*Repositories, error) {
	switch cfg.Databases.Store {
	case config.StoreREST:
		client, err := reststore.NewClient(cfg)
		if err != nil {
			return nil, err
		}
		return &Repositories{
			Strategies:  reststore.NewStrategyStore(client),
			NavRecords:  reststore.NewNavRecordStore(client),
			Weights:     reststore.NewWeightStore(client),
			Products:    reststore.NewProductStore(client),
			Investors:   reststore.NewInvestorStore(client),
			Investments: reststore.NewInvestmentStore(client),
		}, nil
	case config.StorePostgres, "":
		pool, err := database.SetupDB(cfg)
		if err != nil {
			return nil, err
		}
		return &Repositories{
			Strategies:  repositories.NewStrategyRepository(pool),
			NavRecords:  repositories.NewNavRecordRepository(pool),
			Weights:     repositories.NewWeightRepository(pool),
			Products:    repositories.NewProductRepository(pool),
			Investors:   repositories.NewInvestorRepository(pool),
			Investments: repositories.NewInvestmentRepository(pool),
		}, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Databases.Store)
	}
}
