package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application. Everything comes from
// the environment.
type Config struct {
	Port                             string  `mapstructure:"PORT"`
	GinMode                          string  `mapstructure:"GIN_MODE"`
	ClientURL                        string  `mapstructure:"CLIENT_URL"`
	FirebaseProjectID                string  `mapstructure:"FIREBASE_PROJECT_ID"`
	GoogleApplicationCredentials     string  `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	FirebaseServiceAccountJSONBase64 string  `mapstructure:"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64"`
	PaymentGatewayStoreID            string  `mapstructure:"PAYMENT_GATEWAY_STORE_ID"`
	PaymentGatewaySignatureKey       string  `mapstructure:"PAYMENT_GATEWAY_SIGNATURE_KEY"`
	RateLimitRPS                     float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst                   int     `mapstructure:"RATE_LIMIT_BURST"`
}

var appConfig *Config

// LoadConfig loads configuration from environment variables using Viper.
func LoadConfig() (*Config, error) {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("RATE_LIMIT_RPS", 20.0)
	viper.SetDefault("RATE_LIMIT_BURST", 40)

	// Bind environment variables
	viper.BindEnv("PORT")
	viper.BindEnv("GIN_MODE")
	viper.BindEnv("CLIENT_URL")
	viper.BindEnv("FIREBASE_PROJECT_ID")
	viper.BindEnv("GOOGLE_APPLICATION_CREDENTIALS")
	viper.BindEnv("FIREBASE_SERVICE_ACCOUNT_JSON_BASE64")
	viper.BindEnv("PAYMENT_GATEWAY_STORE_ID")
	viper.BindEnv("PAYMENT_GATEWAY_SIGNATURE_KEY")
	viper.BindEnv("RATE_LIMIT_RPS")
	viper.BindEnv("RATE_LIMIT_BURST")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.New("failed to unmarshal config: " + err.Error())
	}

	// Validate required fields
	if cfg.FirebaseProjectID == "" {
		return nil, errors.New("FIREBASE_PROJECT_ID is required")
	}
	if cfg.GoogleApplicationCredentials == "" && cfg.FirebaseServiceAccountJSONBase64 == "" {
		return nil, errors.New("either GOOGLE_APPLICATION_CREDENTIALS or FIREBASE_SERVICE_ACCOUNT_JSON_BASE64 is required")
	}
	if cfg.PaymentGatewayStoreID == "" {
		return nil, errors.New("PAYMENT_GATEWAY_STORE_ID is required")
	}
	if cfg.PaymentGatewaySignatureKey == "" {
		return nil, errors.New("PAYMENT_GATEWAY_SIGNATURE_KEY is required")
	}

	appConfig = &cfg
	return appConfig, nil
}

// GetConfig returns the loaded application configuration. It panics if
// LoadConfig has not been called successfully.
func GetConfig() *Config {
	if appConfig == nil {
		panic("config not loaded; call LoadConfig first")
	}
	return appConfig
}
