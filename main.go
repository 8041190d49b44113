// @title Baxela Election Integrity API
// @version 1.0
// @description Backend API for election-incident reporting, voter registration, candidates and voting

// @securityDefinitions.apikey AdminToken
// @in header
// @name Authorization
package main

import (
	"github.com/Sanenelisiwe1975/Baxela/api"
	"github.com/Sanenelisiwe1975/Baxela/logging"
	"github.com/spf13/viper"
)

func main() {
	logging.BootstrapLogger()

	// Load env
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logging.Log.Warnf("No config file found, relying on environment: %v", err)
	}

	// Read config
	config := api.ReadConfig()

	// Start the service
	service := api.NewServer(config)
	service.Start()
}
