package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Service     ServiceConfig     `mapstructure:"service"`
	Databases   DatabasesConfig   `mapstructure:"databases"`
	Valuation   ValuationConfig   `mapstructure:"valuation"`
	Investments InvestmentsConfig `mapstructure:"investments"`
	Snapshots   SnapshotsConfig   `mapstructure:"snapshots"`
}

type ServiceType string

const (
	API    ServiceType = "API"
	WORKER ServiceType = "WORKER"
)

type ServiceConfig struct {
	Type ServiceType `mapstructure:"type"`
	Port string      `mapstructure:"port"`
}

// StoreType selects the one concrete data store the process talks to.
// There is no runtime fallback between backends.
type StoreType string

const (
	StorePostgres StoreType = "postgres"
	StoreREST     StoreType = "rest"
)

type DatabasesConfig struct {
	Store StoreType  `mapstructure:"store"`
	SQL   SQLConfig  `mapstructure:"sql"`
	REST  RESTConfig `mapstructure:"rest"`
}

type SQLConfig struct {
	Host             string `mapstructure:"host"`
	Port             string `mapstructure:"port"`
	Username         string `mapstructure:"username"`
	Password         string `mapstructure:"password"`
	Database         string `mapstructure:"database"`
	ConnectionString string `mapstructure:"connection_string"`
}

type RESTConfig struct {
	BaseURL string `mapstructure:"baseUrl"`
	APIKey  string `mapstructure:"apiKey"`
}

type ValuationConfig struct {
	// CacheTTLSeconds bounds how long a computed product NAV may be reused.
	// Writes invalidate affected products regardless of the TTL.
	CacheTTLSeconds int `mapstructure:"cacheTtlSeconds"`
}

type InvestmentsConfig struct {
	// RejectOverRedemption, when true, fails redemptions that would drive an
	// investor's net shares in a product below zero.
	RejectOverRedemption bool `mapstructure:"rejectOverRedemption"`
}

type SnapshotsConfig struct {
	CronSpec string `mapstructure:"cronSpec"`
}

func LoadConfig(path, env string) (*Config, error) {
	var cfg Config

	viper.AddConfigPath(path)
	viper.SetConfigName("appsettings")
	viper.SetConfigType("yaml")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	if env != "" {
		viper.SetConfigName(fmt.Sprintf("appsettings.%s", env))
		if err = viper.MergeInConfig(); err != nil {
			return nil, err
		}
	}

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Service.Port == "" {
		cfg.Service.Port = "8000"
	}
	if cfg.Snapshots.CronSpec == "" {
		cfg.Snapshots.CronSpec = "0 6 * * *"
	}
	return &cfg, nil
}
