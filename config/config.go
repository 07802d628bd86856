package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings of the front desk
type Config struct {
	HTTPAddr  string
	LogLevel  string
	LogFormat string

	Seed     bool   // load the built-in sample data on start
	SeedFile string // optional YAML seed applied after the sample data

	RedisAddr     string // empty disables event publishing
	RedisPassword string
	RedisDB       int
	RedisChannel  string
}

// Default returns the settings used when nothing is configured
func Default() Config {
	return Config{
		HTTPAddr:     ":8080",
		LogLevel:     "info",
		LogFormat:    "console",
		Seed:         true,
		RedisChannel: "frontdesk:events",
	}
}

// Load reads an optional .env file and then the FRONTDESK_* environment
// variables on top of the defaults. A missing env file is not an error.
func Load(envFile string) (Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load env file %s: %w", envFile, err)
	}

	cfg := Default()
	setString(&cfg.HTTPAddr, "FRONTDESK_HTTP_ADDR")
	setString(&cfg.LogLevel, "FRONTDESK_LOG_LEVEL")
	setString(&cfg.LogFormat, "FRONTDESK_LOG_FORMAT")
	setString(&cfg.SeedFile, "FRONTDESK_SEED_FILE")
	setString(&cfg.RedisAddr, "FRONTDESK_REDIS_ADDR")
	setString(&cfg.RedisPassword, "FRONTDESK_REDIS_PASSWORD")
	setString(&cfg.RedisChannel, "FRONTDESK_REDIS_CHANNEL")

	if err := setBool(&cfg.Seed, "FRONTDESK_SEED"); err != nil {
		return Config{}, err
	}
	if err := setInt(&cfg.RedisDB, "FRONTDESK_REDIS_DB"); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s=%q: %w", key, v, err)
	}
	*dst = b
	return nil
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s=%q: %w", key, v, err)
	}
	*dst = n
	return nil
}
