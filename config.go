package main

import (
	"os"
	"strings"
	"time"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Port           string
	Env            string
	RedisURL       string
	AllowedOrigins []string
	KafkaBrokers   []string
	KafkaTopic     string
	CartTTL        time.Duration
	SessionTTL     int // cookie max-age in seconds, matches CartTTL
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() Config {
	cartTTL := time.Hour * 24 * 7 // default 7 days

	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("APP_ENV", "development"),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379"),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),
		KafkaTopic:     getEnv("KAFKA_TOPIC", "sale.completed"),
		CartTTL:        cartTTL,
		SessionTTL:     int(cartTTL.Seconds()),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
