package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds the service configuration, loaded from the environment
// with an optional .env file for local development.
type Config struct {
	App     AppConfig
	Auth    AuthConfig
	Storage StorageConfig
}

type AppConfig struct {
	Name        string
	Env         string
	Port        string
	LogLevel    string
	CompanyName string
	// CompanyInitials appear in the receipt logo badge.
	CompanyInitials string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type StorageConfig struct {
	DataDir         string
	ReceiptCacheTTL time.Duration
}

// Load reads the configuration.
func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	viper.SetDefault("APP_NAME", "transaction-tracker")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "INFO")
	viper.SetDefault("COMPANY_NAME", "Tool & Thread")
	viper.SetDefault("COMPANY_INITIALS", "T&T")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("TOKEN_TTL_HOURS", 24)
	viper.SetDefault("DATA_DIR", "./data")
	viper.SetDefault("RECEIPT_CACHE_TTL_MINUTES", 60)

	return &Config{
		App: AppConfig{
			Name:            viper.GetString("APP_NAME"),
			Env:             viper.GetString("APP_ENV"),
			Port:            viper.GetString("APP_PORT"),
			LogLevel:        viper.GetString("LOG_LEVEL"),
			CompanyName:     viper.GetString("COMPANY_NAME"),
			CompanyInitials: viper.GetString("COMPANY_INITIALS"),
		},
		Auth: AuthConfig{
			JWTSecret: viper.GetString("JWT_SECRET"),
			TokenTTL:  time.Duration(viper.GetInt("TOKEN_TTL_HOURS")) * time.Hour,
		},
		Storage: StorageConfig{
			DataDir:         viper.GetString("DATA_DIR"),
			ReceiptCacheTTL: time.Duration(viper.GetInt("RECEIPT_CACHE_TTL_MINUTES")) * time.Minute,
		},
	}
}
