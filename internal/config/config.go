// Package config loads the service configuration from a YAML file,
// then applies .env and environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	GRPC    GRPCConfig    `yaml:"grpc"`
	Engine  EngineConfig  `yaml:"engine"`
	Catalog CatalogConfig `yaml:"catalog"`
	Kafka   KafkaConfig   `yaml:"kafka"`
	Log     LogConfig     `yaml:"log"`
}

type HTTPConfig struct {
	Addr           string `yaml:"addr"`
	RequestTimeout int    `yaml:"request_timeout_ms"`
}

type GRPCConfig struct {
	Addr string `yaml:"addr"`
}

// EngineConfig holds the price simulation cadence.
type EngineConfig struct {
	UpdateIntervalMs int  `yaml:"update_interval_ms"`
	FlagWindowMs     int  `yaml:"flag_window_ms"`
	AutoStart        bool `yaml:"auto_start"`
}

type CatalogConfig struct {
	TokensPerCategory int `yaml:"tokens_per_category"`
	LoadDelayMs       int `yaml:"load_delay_ms"`
}

type KafkaConfig struct {
	Enabled   bool   `yaml:"enabled"`
	BrokerURL string `yaml:"broker_url"`
	Topic     string `yaml:"topic"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func Default() *Config {
	return &Config{
		HTTP:    HTTPConfig{Addr: ":8080", RequestTimeout: 5000},
		GRPC:    GRPCConfig{Addr: ":50051"},
		Engine:  EngineConfig{UpdateIntervalMs: 3000, FlagWindowMs: 600, AutoStart: true},
		Catalog: CatalogConfig{TokensPerCategory: 15, LoadDelayMs: 1500},
		Kafka:   KafkaConfig{BrokerURL: "localhost:9092", Topic: "token-prices"},
		Log:     LogConfig{Level: "info"},
	}
}

// LoadConfig reads path on top of the defaults. A missing file is not an
// error; the defaults and environment are used instead.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	_ = godotenv.Load()
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.HTTP.Addr = getEnvString("PULSE_HTTP_ADDR", cfg.HTTP.Addr)
	cfg.GRPC.Addr = getEnvString("PULSE_GRPC_ADDR", cfg.GRPC.Addr)
	cfg.Engine.UpdateIntervalMs = getEnvInt("PULSE_UPDATE_INTERVAL_MS", cfg.Engine.UpdateIntervalMs)
	cfg.Engine.FlagWindowMs = getEnvInt("PULSE_FLAG_WINDOW_MS", cfg.Engine.FlagWindowMs)
	cfg.Catalog.TokensPerCategory = getEnvInt("PULSE_TOKENS_PER_CATEGORY", cfg.Catalog.TokensPerCategory)
	cfg.Catalog.LoadDelayMs = getEnvInt("PULSE_LOAD_DELAY_MS", cfg.Catalog.LoadDelayMs)
	cfg.Log.Level = getEnvString("PULSE_LOG_LEVEL", cfg.Log.Level)

	if broker := os.Getenv("PULSE_KAFKA_BROKER"); broker != "" {
		cfg.Kafka.BrokerURL = broker
		cfg.Kafka.Enabled = true
	}
	cfg.Kafka.Topic = getEnvString("PULSE_KAFKA_TOPIC", cfg.Kafka.Topic)
}

func (cfg *Config) Validate() error {
	if cfg.HTTP.RequestTimeout <= 0 {
		return fmt.Errorf("http.request_timeout_ms must be positive, got %d", cfg.HTTP.RequestTimeout)
	}
	if cfg.Engine.UpdateIntervalMs <= 0 {
		return fmt.Errorf("engine.update_interval_ms must be positive, got %d", cfg.Engine.UpdateIntervalMs)
	}
	if cfg.Engine.FlagWindowMs <= 0 {
		return fmt.Errorf("engine.flag_window_ms must be positive, got %d", cfg.Engine.FlagWindowMs)
	}
	if cfg.Catalog.TokensPerCategory < 0 {
		return fmt.Errorf("catalog.tokens_per_category must not be negative, got %d", cfg.Catalog.TokensPerCategory)
	}
	if cfg.Kafka.Enabled && cfg.Kafka.Topic == "" {
		return errors.New("kafka.topic is required when kafka is enabled")
	}
	return nil
}

func (e EngineConfig) UpdateInterval() time.Duration {
	return time.Duration(e.UpdateIntervalMs) * time.Millisecond
}

func (e EngineConfig) FlagWindow() time.Duration {
	return time.Duration(e.FlagWindowMs) * time.Millisecond
}

func (c CatalogConfig) LoadDelay() time.Duration {
	return time.Duration(c.LoadDelayMs) * time.Millisecond
}

func (h HTTPConfig) Timeout() time.Duration {
	return time.Duration(h.RequestTimeout) * time.Millisecond
}

func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}
