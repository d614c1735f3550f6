package utils

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	StoreMongo  = "mongo"
	StoreSQLite = "sqlite"

	// EmptyPlanetsOK answers an empty planet list with 200 and [].
	EmptyPlanetsOK = "ok"
	// EmptyPlanetsNotFound answers an empty planet list with 404.
	EmptyPlanetsNotFound = "not_found"
)

type Config struct {
	Port     int    `yaml:"port"`
	GRPCAddr string `yaml:"grpc_addr"`
	LogLevel string `yaml:"log_level"`

	Store StoreConfig `yaml:"store"`
	CORS  CORSConfig  `yaml:"cors"`
	Query QueryConfig `yaml:"query"`
}

type StoreConfig struct {
	Driver         string        `yaml:"driver"`
	MongoURI       string        `yaml:"mongo_uri"`
	MongoDatabase  string        `yaml:"mongo_database"`
	Collection     string        `yaml:"collection"`
	SQLitePath     string        `yaml:"sqlite_path"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	ConnectRetries int           `yaml:"connect_retries"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
}

type QueryConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	EmptyPlanets string        `yaml:"empty_planets"`
}

// Addr is the HTTP listen address.
func (c Config) Addr() string { return ":" + strconv.Itoa(c.Port) }

func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = "."
	}

	return Config{
		Port:     3001,
		GRPCAddr: ":7071",
		LogLevel: "info",
		Store: StoreConfig{
			Driver:         StoreMongo,
			MongoURI:       "mongodb://localhost:27017",
			MongoDatabase:  "solar",
			Collection:     "bodies",
			SQLitePath:     filepath.Join(home, ".solar", "bodies.db"),
			ConnectTimeout: 10 * time.Second,
			ConnectRetries: 5,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		},
		Query: QueryConfig{
			Timeout:      5 * time.Second,
			EmptyPlanets: EmptyPlanetsOK,
		},
	}
}

// LoadConfig builds the configuration from defaults, then the YAML file named
// by SOLAR_CONFIG (if any), then environment variables.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	if path := GetString("SOLAR_CONFIG", ""); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading config file '%s'", path)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return errors.Wrapf(err, "parsing config file '%s'", path)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Port = GetInt("API_PORT", c.Port)
	c.GRPCAddr = GetString("SOLAR_GRPC_ADDR", c.GRPCAddr)
	c.LogLevel = GetString("SOLAR_LOG_LEVEL", c.LogLevel)

	c.Store.Driver = strings.ToLower(GetString("SOLAR_STORE_DRIVER", c.Store.Driver))
	c.Store.MongoURI = GetString("MONGO_URI", c.Store.MongoURI)
	c.Store.MongoDatabase = GetString("MONGO_DATABASE", c.Store.MongoDatabase)
	c.Store.Collection = GetString("MONGO_COLLECTION", c.Store.Collection)
	c.Store.SQLitePath = GetString("SOLAR_SQLITE_PATH", c.Store.SQLitePath)
	c.Store.ConnectTimeout = GetDuration("SOLAR_CONNECT_TIMEOUT", c.Store.ConnectTimeout)
	c.Store.ConnectRetries = GetInt("SOLAR_CONNECT_RETRIES", c.Store.ConnectRetries)

	c.CORS.AllowedOrigins = GetList("SOLAR_CORS_ORIGINS", c.CORS.AllowedOrigins)
	if frontend := GetString("FRONTEND_URL", ""); frontend != "" {
		c.CORS.AllowedOrigins = appendIfMissing(c.CORS.AllowedOrigins, strings.TrimRight(frontend, "/"))
	}
	c.CORS.AllowedMethods = GetList("SOLAR_CORS_METHODS", c.CORS.AllowedMethods)
	c.CORS.AllowedHeaders = GetList("SOLAR_CORS_HEADERS", c.CORS.AllowedHeaders)

	c.Query.Timeout = GetDuration("SOLAR_REQUEST_TIMEOUT", c.Query.Timeout)
	c.Query.EmptyPlanets = strings.ToLower(GetString("SOLAR_EMPTY_PLANETS", c.Query.EmptyPlanets))
}

func (c Config) Validate() error {
	switch c.Store.Driver {
	case StoreMongo:
		if c.Store.MongoURI == "" {
			return errors.New("mongo store requires MONGO_URI")
		}
		if c.Store.Collection == "" {
			return errors.New("mongo store requires MONGO_COLLECTION")
		}
	case StoreSQLite:
		if c.Store.SQLitePath == "" {
			return errors.New("sqlite store requires SOLAR_SQLITE_PATH")
		}
	default:
		return errors.Errorf("unknown store driver '%s'", c.Store.Driver)
	}

	switch c.Query.EmptyPlanets {
	case EmptyPlanetsOK, EmptyPlanetsNotFound:
	default:
		return errors.Errorf("empty planets policy must be '%s' or '%s', got '%s'",
			EmptyPlanetsOK, EmptyPlanetsNotFound, c.Query.EmptyPlanets)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return errors.Errorf("invalid port %d", c.Port)
	}
	if c.Query.Timeout <= 0 {
		return errors.New("request timeout must be positive")
	}
	if c.Store.ConnectTimeout <= 0 {
		return errors.New("connect timeout must be positive")
	}
	if c.Store.ConnectRetries < 0 {
		return errors.Errorf("connect retries must not be negative, got %d", c.Store.ConnectRetries)
	}
	return nil
}

func appendIfMissing(slice []string, v string) []string {
	for _, x := range slice {
		if x == v {
			return slice
		}
	}
	return append(slice, v)
}
