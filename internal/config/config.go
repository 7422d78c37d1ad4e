package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/wichananm65/dynamic-form-backend/internal/record"
)

const defaultMaxUploadBytes = 32 << 20

// Config holds file- and environment-driven configuration. Environment
// variables win over the YAML file named by CONFIG_FILE.
type Config struct {
	Addr            string `yaml:"addr"`
	StoreDriver     string `yaml:"store_driver"`
	DatabaseURL     string `yaml:"database_url"`
	MongoURI        string `yaml:"mongo_uri"`
	MongoDatabase   string `yaml:"mongo_database"`
	MongoCollection string `yaml:"mongo_collection"`
	JWTSecret       string `yaml:"jwt_secret"`
	LogLevel        string `yaml:"log_level"`
	MaxUploadBytes  int    `yaml:"max_upload_bytes"`
}

func defaults() Config {
	return Config{
		Addr:            ":8080",
		StoreDriver:     string(record.DriverMemory),
		MongoDatabase:   "dynamicform",
		MongoCollection: "form_data",
		LogLevel:        "info",
		MaxUploadBytes:  defaultMaxUploadBytes,
	}
}

// Load reads configuration from CONFIG_FILE (optional) and environment variables.
func Load() (Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	setString(&cfg.Addr, "FORM_ADDR")
	setString(&cfg.StoreDriver, "STORE_DRIVER")
	setString(&cfg.DatabaseURL, "DATABASE_URL")
	setString(&cfg.MongoURI, "MONGO_URI")
	setString(&cfg.MongoDatabase, "MONGO_DATABASE")
	setString(&cfg.MongoCollection, "MONGO_COLLECTION")
	setString(&cfg.JWTSecret, "JWT_SECRET")
	setString(&cfg.LogLevel, "LOG_LEVEL")

	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid MAX_UPLOAD_BYTES %q", v)
		}
		cfg.MaxUploadBytes = n
	}

	return cfg, nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func (c Config) StoreOptions() record.StoreOptions {
	return record.StoreOptions{
		Driver:          record.Driver(c.StoreDriver),
		DatabaseURL:     c.DatabaseURL,
		MongoURI:        c.MongoURI,
		MongoDatabase:   c.MongoDatabase,
		MongoCollection: c.MongoCollection,
	}
}
