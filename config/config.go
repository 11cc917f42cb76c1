package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr          string `mapstructure:"REDIS_ADDR"`
	RedisPassword      string `mapstructure:"REDIS_PASSWORD"`
	RedisAuthDB        int    `mapstructure:"REDIS_AUTH_DB"`
	RedisIdempotencyDB int    `mapstructure:"REDIS_IDEMPOTENCY_DB"`
	RedisSweepQueueDB  int    `mapstructure:"REDIS_SWEEP_QUEUE_DB"`

	// Payment gateways.
	StripeKey             string `mapstructure:"STRIPE_KEY"`
	PaynowEndpoint        string `mapstructure:"PAYNOW_ENDPOINT"`
	InnbucksEndpoint      string `mapstructure:"INNBUCKS_ENDPOINT"`
	PaymentTimeoutSeconds int    `mapstructure:"PAYMENT_TIMEOUT_SECONDS"`

	// Marketplace policy.
	PlatformFeeRate string `mapstructure:"PLATFORM_FEE_RATE"`
	BookingDueDays  int    `mapstructure:"BOOKING_DUE_DAYS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_IDEMPOTENCY_DB", 2)
	viper.SetDefault("REDIS_SWEEP_QUEUE_DB", 3)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "talentshout")
	viper.SetDefault("STRIPE_KEY", "")
	viper.SetDefault("PAYNOW_ENDPOINT", "https://www.paynow.co.zw/interface/initiatetransaction")
	viper.SetDefault("INNBUCKS_ENDPOINT", "https://api.innbucks.co.zw/payments")
	viper.SetDefault("PAYMENT_TIMEOUT_SECONDS", 15)
	viper.SetDefault("PLATFORM_FEE_RATE", "0.25")
	viper.SetDefault("BOOKING_DUE_DAYS", 7)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
