package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the loaded configuration
type Config struct {
	Port           string
	Env            string
	BackendURL     string
	BackendWSURL   string
	RequestTimeout time.Duration
	RedisURL       string
	SessionTTL     time.Duration
	KafkaBrokers   string
	KafkaTopic     string
}

// Load reads configuration from the environment, with .env support.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return Config{
		Port:           getEnv("PORT", "8090"),
		Env:            getEnv("APP_ENV", "development"),
		BackendURL:     getEnv("BACKEND_URL", "http://localhost:8080/api"),
		BackendWSURL:   getEnv("BACKEND_WS_URL", "ws://localhost:8080/ws"),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 15*time.Second),
		RedisURL:       getEnv("REDIS_URL", ""),
		SessionTTL:     getDuration("SESSION_TTL", 24*time.Hour),
		KafkaBrokers:   getEnv("KAFKA_BROKERS", ""),
		KafkaTopic:     getEnv("KAFKA_TOPIC", "pedido.created"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		log.Printf("invalid duration for %s, using default %s", key, defaultVal)
	}
	return defaultVal
}
