package config

import (
	"fmt" // Error wrapping

	"github.com/ilyakaznacheev/cleanenv" // Typed env parsing
	"github.com/joho/godotenv"           // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort    string `env:"APP_PORT" env-default:"8080"`              // Application port
	DBUser     string `env:"DB_USER" env-default:"root"`               // Database user
	DBPassword string `env:"DB_PASSWORD" env-default:""`               // Database password
	DBHost     string `env:"DB_HOST" env-default:"127.0.0.1"`          // Database host
	DBPort     string `env:"DB_PORT" env-default:"3306"`               // Database port
	DBName     string `env:"DB_NAME" env-default:"bookkeeper"`         // Database name
	JWTSecret  string `env:"JWT_SECRET" env-default:"your-secret-key"` // JWT signing secret
	RedisAddr  string `env:"REDIS_ADDR" env-default:""`                // Redis address; empty disables caching
	RedisPass  string `env:"REDIS_PASS" env-default:""`                // Redis password
	RedisDB    int    `env:"REDIS_DB" env-default:"0"`                 // Redis database number
	AdminUser  string `env:"ADMIN_USERNAME" env-default:"admin"`       // Bootstrap admin username
	AdminPass  string `env:"ADMIN_PASSWORD" env-default:"admin123"`    // Bootstrap admin password
	IsProd     bool   `env:"IS_PROD" env-default:"false"`              // Is production environment
}

// Load reads configuration from the environment, honoring a local .env file
func Load() (*Config, error) {
	_ = godotenv.Load() // Load .env file if present
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	return &cfg, nil
}

// DSN assembles the MySQL data source name
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}
