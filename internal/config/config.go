package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	ServerHost string
	ServerPort string
	AppEnv     string

	CORSOrigins []string

	JWTSecret        string
	JWTRefreshSecret string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration

	FirebaseProjectID string
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "kanny_user"),
		DBPassword: getEnv("DB_PASSWORD", "kanny_pass"),
		DBName:     getEnv("DB_NAME", "kanny_db"),

		ServerHost: getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort: getEnv("SERVER_PORT", "8080"),
		AppEnv:     getEnv("APP_ENV", "development"),

		CORSOrigins: splitOrigins(getEnv("CORS_ORIGIN", "http://localhost:3000")),

		JWTSecret:        getEnv("JWT_SECRET", "your-secret-key"),
		JWTRefreshSecret: getEnv("JWT_REFRESH_SECRET", "your-refresh-secret"),
		AccessTokenTTL:   getDuration("JWT_ACCESS_TTL", 15*time.Minute),
		RefreshTokenTTL:  getDuration("JWT_REFRESH_TTL", 7*24*time.Hour),

		FirebaseProjectID: getEnv("FIREBASE_PROJECT_ID", ""),
	}
}

// IsProduction switches refresh cookie attributes between cross-site
// production settings and local development settings.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("⚠️  Invalid duration for %s, using default: %v", key, err)
		return defaultVal
	}
	return d
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
