package api

import (
	"sync"

	"github.com/Sanenelisiwe1975/Baxela/logging"
	"github.com/spf13/viper"
)

type Config struct {
	ServerConfig
	StorageConfig
	PinningConfig
	AdminConfig
	EligibilityConfig
}

type ServerConfig struct {
	Port int
}

type StorageConfig struct {
	Backend  string // memory | mysql
	MySQLDSN string
}

type PinningConfig struct {
	APIKey     string
	APISecret  string
	BaseURL    string
	GatewayURL string
}

type AdminConfig struct {
	Wallets   []string
	JWTSecret string
}

type EligibilityConfig struct {
	Country         string
	MunicipalStates []string
}

var settingsOnce sync.Once

func ReadConfig() *Config {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("storage.backend", "memory")
	viper.SetDefault("eligibility.country", "United States")

	conf := &Config{
		ServerConfig: ServerConfig{
			Port: viper.GetInt("server.port"),
		},
		StorageConfig: StorageConfig{
			Backend:  viper.GetString("storage.backend"),
			MySQLDSN: viper.GetString("storage.mysqlDSN"),
		},
		PinningConfig: PinningConfig{
			APIKey:     viper.GetString("pinning.apiKey"),
			APISecret:  viper.GetString("pinning.apiSecret"),
			BaseURL:    viper.GetString("pinning.baseURL"),
			GatewayURL: viper.GetString("pinning.gatewayURL"),
		},
		AdminConfig: AdminConfig{
			Wallets:   viper.GetStringSlice("admin.wallets"),
			JWTSecret: viper.GetString("admin.jwtSecret"),
		},
		EligibilityConfig: EligibilityConfig{
			Country:         viper.GetString("eligibility.country"),
			MunicipalStates: viper.GetStringSlice("eligibility.municipalStates"),
		},
	}

	settingsOnce.Do(func() {
		logging.Log.Print("Reading settings!")
	})

	return conf
}
