package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"

	"surveyportal/internal/logging"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	ENV_HTTP_PORT           = "HTTP_PORT"
	ENV_STORE_MEDIUM        = "STORE_MEDIUM"
	ENV_STATE_KEY           = "STATE_KEY"
	ENV_STATE_FILE          = "STATE_FILE"
	ENV_REDIS_URI           = "REDIS_URI"
	ENV_MONGO_URI           = "MONGO_URI"
	ENV_MONGO_DATABASE      = "MONGO_DATABASE"
	ENV_SQLITE_PATH         = "SQLITE_PATH"
	ENV_BADGER_DIR          = "BADGER_DIR"
	ENV_PERSIST_TIMEOUT     = "PERSIST_TIMEOUT"
	ENV_ANALYTICS_CACHE     = "ANALYTICS_CACHE"
	ENV_ANALYTICS_CACHE_TTL = "ANALYTICS_CACHE_TTL"
	ENV_LOG_LEVEL           = "LOG_LEVEL"
	ENV_LOG_FILE            = "LOG_FILE"
)

// Store media
const (
	MediumFile   = "file"
	MediumMemory = "memory"
	MediumRedis  = "redis"
	MediumMongo  = "mongo"
	MediumSQLite = "sqlite"
	MediumBadger = "badger"
)

// StoreConfig selects where the survey document is persisted
type StoreConfig struct {
	Medium         string        `yaml:"medium"`
	Key            string        `yaml:"key"`
	FilePath       string        `yaml:"file_path"`
	RedisURI       string        `yaml:"redis_uri"`
	MongoURI       string        `yaml:"mongo_uri"`
	MongoDatabase  string        `yaml:"mongo_database"`
	SQLitePath     string        `yaml:"sqlite_path"`
	BadgerDir      string        `yaml:"badger_dir"`
	PersistTimeout time.Duration `yaml:"persist_timeout"`
}

// Config is the server configuration
type Config struct {
	Logging logging.Config `yaml:"logging"`

	HTTP struct {
		Port string `yaml:"port"`
	} `yaml:"http"`

	Store StoreConfig `yaml:"store"`

	AnalyticsCache struct {
		Enabled bool          `yaml:"enabled"`
		TTL     time.Duration `yaml:"ttl"`
	} `yaml:"analytics_cache"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	cfg := &Config{}
	cfg.Logging.LogLevel = "info"
	cfg.Logging.MaxSize = 50
	cfg.Logging.MaxAge = 14
	cfg.Logging.MaxBackups = 3
	cfg.HTTP.Port = "8080"
	cfg.Store = StoreConfig{
		Medium:         MediumFile,
		Key:            "survey-portal-state",
		FilePath:       "data/survey-portal-state.json",
		RedisURI:       "localhost:6379",
		MongoURI:       "mongodb://localhost:27017",
		MongoDatabase:  "surveyportal",
		SQLitePath:     "data/survey-portal.sqlite",
		BadgerDir:      "data/badger",
		PersistTimeout: 5 * time.Second,
	}
	cfg.AnalyticsCache.TTL = 10 * time.Minute
	return cfg
}

// Load reads the optional YAML file named by CONFIG_FILE_PATH and applies
// environment overrides on top of it
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv(ENV_CONFIG_FILE_PATH); path != "" {
		yamlFile, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.UnmarshalStrict(yamlFile, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.HTTP.Port = getEnv(ENV_HTTP_PORT, cfg.HTTP.Port)
	cfg.Store.Medium = strings.ToLower(getEnv(ENV_STORE_MEDIUM, cfg.Store.Medium))
	cfg.Store.Key = getEnv(ENV_STATE_KEY, cfg.Store.Key)
	cfg.Store.FilePath = getEnv(ENV_STATE_FILE, cfg.Store.FilePath)
	cfg.Store.RedisURI = getEnv(ENV_REDIS_URI, cfg.Store.RedisURI)
	cfg.Store.MongoURI = getEnv(ENV_MONGO_URI, cfg.Store.MongoURI)
	cfg.Store.MongoDatabase = getEnv(ENV_MONGO_DATABASE, cfg.Store.MongoDatabase)
	cfg.Store.SQLitePath = getEnv(ENV_SQLITE_PATH, cfg.Store.SQLitePath)
	cfg.Store.BadgerDir = getEnv(ENV_BADGER_DIR, cfg.Store.BadgerDir)
	cfg.Logging.LogLevel = getEnv(ENV_LOG_LEVEL, cfg.Logging.LogLevel)
	if f := os.Getenv(ENV_LOG_FILE); f != "" {
		cfg.Logging.LogToFile = true
		cfg.Logging.Filename = f
	}

	var err error
	if cfg.Store.PersistTimeout, err = getEnvDuration(ENV_PERSIST_TIMEOUT, cfg.Store.PersistTimeout); err != nil {
		return nil, err
	}
	if cfg.AnalyticsCache.TTL, err = getEnvDuration(ENV_ANALYTICS_CACHE_TTL, cfg.AnalyticsCache.TTL); err != nil {
		return nil, err
	}
	if v := os.Getenv(ENV_ANALYTICS_CACHE); v != "" {
		if cfg.AnalyticsCache.Enabled, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("%s: %w", ENV_ANALYTICS_CACHE, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the medium and the settings it needs
func (c *Config) Validate() error {
	switch c.Store.Medium {
	case MediumFile:
		if c.Store.FilePath == "" {
			return fmt.Errorf("store medium %q needs a file path", c.Store.Medium)
		}
	case MediumMemory, MediumBadger:
	case MediumRedis:
		if c.Store.RedisURI == "" {
			return fmt.Errorf("store medium %q needs a redis uri", c.Store.Medium)
		}
	case MediumMongo:
		if c.Store.MongoURI == "" || c.Store.MongoDatabase == "" {
			return fmt.Errorf("store medium %q needs a mongo uri and database", c.Store.Medium)
		}
	case MediumSQLite:
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("store medium %q needs a sqlite path", c.Store.Medium)
		}
	default:
		return fmt.Errorf("unknown store medium %q", c.Store.Medium)
	}
	if c.AnalyticsCache.Enabled && c.Store.RedisURI == "" {
		return fmt.Errorf("analytics cache needs a redis uri")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
