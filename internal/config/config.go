package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration.
type Config struct {
	InfluxURL     string
	InfluxToken   string
	InfluxOrg     string
	InfluxBucket  string
	RedisAddr     string
	RedisPassword string
	Port          string
	// PushEnabled controls whether the live event stream is served.
	// Some deployment targets cannot hold long-lived connections; the
	// rest of the API is unaffected when it is off.
	PushEnabled    bool
	AllowedOrigins []string
}

// Load reads the configuration from environment variables, after
// loading a .env file when one is present.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system environment variables")
	}

	cfg := Config{
		InfluxURL:      os.Getenv("INFLUXDB_URL"),
		InfluxToken:    os.Getenv("INFLUXDB_TOKEN"),
		InfluxOrg:      os.Getenv("INFLUXDB_ORG"),
		InfluxBucket:   getenvDefault("INFLUXDB_BUCKET", "fan_readings"),
		RedisAddr:      getenvDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		Port:           getenvDefault("PORT", "8081"),
		PushEnabled:    getenvDefault("PUSH_ENABLED", "true") != "false",
		AllowedOrigins: splitOrigins(getenvDefault("ALLOWED_ORIGINS", "*")),
	}

	if cfg.InfluxURL == "" || cfg.InfluxToken == "" || cfg.InfluxOrg == "" {
		return Config{}, fmt.Errorf("InfluxDB configuration is incomplete. Please set INFLUXDB_URL, INFLUXDB_TOKEN, and INFLUXDB_ORG environment variables")
	}
	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
