package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr          string
	DBPath        string
	LogLevel      string
	WorkerCount   int
	QueueSize     int
	MigrateOnBoot bool
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:          envOr("ADDR", ":8080"),
		DBPath:        envOr("DB_PATH", "file:dartscore.db"),
		LogLevel:      envOr("LOG_LEVEL", "INFO"),
		WorkerCount:   envIntOr("WORKER_COUNT", 2),
		QueueSize:     envIntOr("QUEUE_SIZE", 64),
		MigrateOnBoot: envBoolOr("MIGRATE_ON_BOOT", false),
	}
}

// Validate checks the configuration, collecting every problem into one
// error so a bad deployment surfaces all of them at once.
func (c Config) Validate() error {
	var problems []string
	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL %q is not a known level", c.LogLevel))
	}
	if c.WorkerCount <= 0 {
		problems = append(problems, "WORKER_COUNT must be positive")
	}
	if c.QueueSize <= 0 {
		problems = append(problems, "QUEUE_SIZE must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("invalid value for %s=%q, using default %v", key, v, def)
	}
	return def
}
