// Package config loads application settings from the environment or a
// local .env file and exposes them through the global AppConfig.
package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds the full application configuration.
//
// ENV equivalent:
//
//	SERVER_PORT=8080
//	POSTGRES_HOST=localhost
//	POSTGRES_PORT=5432
//	POSTGRES_USER=postgres
//	POSTGRES_PASSWORD=postgres
//	POSTGRES_DB=ccpmargin
//	POSTGRES_SSLMODE=disable
//	STRESS_MULT=1.0
//	CONC_THRESHOLD=0
//	CONC_ADDON_PCT=0
type Config struct {
	Server   ServerConfig
	Postgres PostgresConfig
	Scenario ScenarioConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string
}

// PostgresConfig defines connection details for the snapshot store.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string // computed DSN
}

// ScenarioConfig carries the default simulation scenario. API requests and
// CLI flags override these per run.
type ScenarioConfig struct {
	StressMult    float64
	ConcThreshold float64
	ConcAddonPct  float64
}

// AppConfig is the globally accessible configuration instance, populated
// once via LoadConfig().
var AppConfig Config

// LoadConfig initializes AppConfig. Precedence, lowest to highest:
// defaults set here, values from a .env file if present, then environment
// variables. Missing required fields terminate the process.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "ccpmargin")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	viper.SetDefault("STRESS_MULT", 1.0)
	viper.SetDefault("CONC_THRESHOLD", 0.0)
	viper.SetDefault("CONC_ADDON_PCT", 0.0)

	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // no .env is fine

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
		Scenario: ScenarioConfig{
			StressMult:    viper.GetFloat64("STRESS_MULT"),
			ConcThreshold: viper.GetFloat64("CONC_THRESHOLD"),
			ConcAddonPct:  viper.GetFloat64("CONC_ADDON_PCT"),
		},
	}

	AppConfig.Postgres.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		AppConfig.Postgres.User,
		AppConfig.Postgres.Password,
		AppConfig.Postgres.Host,
		AppConfig.Postgres.Port,
		AppConfig.Postgres.DBName,
		AppConfig.Postgres.SSLMode,
	)

	validateConfig()
}

// validateConfig terminates the process when required variables are missing
// or the default scenario is unusable.
func validateConfig() {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if AppConfig.Postgres.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if AppConfig.Postgres.Port == 0 {
		missing = append(missing, "POSTGRES_PORT")
	}
	if AppConfig.Postgres.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if AppConfig.Postgres.Password == "" {
		missing = append(missing, "POSTGRES_PASSWORD")
	}
	if AppConfig.Postgres.DBName == "" {
		missing = append(missing, "POSTGRES_DB")
	}

	if len(missing) > 0 {
		log.Fatalf("missing required environment variables: %v\n", missing)
	}

	if AppConfig.Scenario.StressMult <= 0 {
		log.Fatalf("STRESS_MULT must be positive, got %v\n", AppConfig.Scenario.StressMult)
	}
	if AppConfig.Scenario.ConcThreshold < 0 || AppConfig.Scenario.ConcAddonPct < 0 {
		log.Fatalf("concentration settings must be non-negative\n")
	}
}
