package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	Env              string
	AllowedOrigins   string
	RedisURL         string
	CartTTL          time.Duration
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string
	PostgresSSLMode  string
	PostgresTimeZone string
	MongoURI         string
	MongoDB          string
	GatewayBaseURL   string
	GatewaySecret    string
	CallbackBaseURL  string
	ReturnURL        string
	Currency         string
	JWTSecret        string
	AdminUsername    string
	AdminPassword    string
	KafkaBrokers     string
	KafkaTopic       string
}

func LoadConfig() (*Config, error) {
	// .env is optional; real deployments inject environment directly
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("APP_ENV", "development"),
		AllowedOrigins:   getEnv("ALLOWED_ORIGINS", "https://savoraddis.netlify.app"),
		RedisURL:         getEnv("REDIS_URL", "redis://redis:6379"),
		CartTTL:          time.Hour * 24 * 7, // default 7 days
		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     os.Getenv("POSTGRES_HOST"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		PostgresTimeZone: getEnv("POSTGRES_TIMEZONE", "Africa/Addis_Ababa"),
		MongoURI:         getEnv("MONGO_URI", "mongodb://mongo:27017"),
		MongoDB:          getEnv("MONGO_DB", "cafe_menu"),
		GatewayBaseURL:   os.Getenv("PAYMENT_GATEWAY_URL"),
		GatewaySecret:    os.Getenv("PAYMENT_GATEWAY_SECRET"),
		CallbackBaseURL:  getEnv("CALLBACK_BASE_URL", "http://localhost:8080"),
		ReturnURL:        getEnv("RETURN_URL", "https://savoraddis.netlify.app"),
		Currency:         getEnv("CURRENCY", "ETB"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		AdminUsername:    os.Getenv("ADMIN_USERNAME"),
		AdminPassword:    os.Getenv("ADMIN_PASSWORD"),
		KafkaBrokers:     getEnv("KAFKA_BROKERS", "localhost:9092"),
		KafkaTopic:       getEnv("ORDER_EVENTS_TOPIC", "order.events"),
	}

	if cfg.PostgresUser == "" || cfg.PostgresPassword == "" || cfg.PostgresDB == "" || cfg.PostgresHost == "" {
		return nil, fmt.Errorf("database config incomplete")
	}
	if cfg.GatewayBaseURL == "" {
		return nil, fmt.Errorf("PAYMENT_GATEWAY_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
