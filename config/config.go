// Package config provides configuration management for the ecommerce backend.
//
// Values are layered with koanf: built-in defaults, then an optional YAML file
// named by CONFIG_FILE, then environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ConfigFileEnv names the environment variable that points at an optional YAML file.
const ConfigFileEnv = "CONFIG_FILE"

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig
	Catalog  CatalogConfig
	Database DatabaseConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string
	RateLimit      int
	RateWindow     time.Duration
	RequestTimeout time.Duration
	CORSOrigins    []string
	SwaggerUser    string
	SwaggerPass    string
	UploadDir      string
}

// CatalogConfig holds listing sizes used by product and dashboard reads.
type CatalogConfig struct {
	ProductsPerPage         int
	LatestProductsLimit     int
	LatestTransactionsLimit int
}

// DatabaseConfig holds MongoDB configuration.
type DatabaseConfig struct {
	URI          string
	DatabaseName string
	LogsTTL      time.Duration
	LogsEnabled  bool
	// CircuitBreaker configuration
	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level  string
	Pretty bool
}

// defaults maps every recognised key to its fallback. Keys double as the
// lower-cased environment variable names.
var defaults = map[string]any{
	"port":                              "8080",
	"rate_limit":                        100,
	"rate_window":                       "1m",
	"request_timeout":                   "30s",
	"cors_origins":                      "",
	"swagger_user":                      "",
	"swagger_pass":                      "",
	"upload_dir":                        "uploads",
	"product_per_page":                  8,
	"latest_products_limit":             5,
	"latest_transactions_limit":         4,
	"mongodb_uri":                       "mongodb://localhost:27017",
	"mongodb_database":                  "ecommerce",
	"mongodb_logs_ttl":                  "720h",
	"mongodb_logs_enabled":              false,
	"circuit_breaker_failure_threshold": 5,
	"circuit_breaker_success_threshold": 2,
	"circuit_breaker_timeout":           "30s",
	"log_level":                         "info",
	"log_pretty":                        false,
}

// Load creates a Config from defaults, the optional CONFIG_FILE and the environment.
// Values that fail to parse fall back to their defaults.
func Load() (Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return Config{}, fmt.Errorf("config: load defaults: %w", err)
	}

	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("config: load file %s: %w", path, err)
		}
	}

	// Only known keys are taken from the environment.
	transform := func(s string) string {
		key := strings.ToLower(s)
		if _, ok := defaults[key]; ok {
			return key
		}
		return ""
	}
	if err := k.Load(env.Provider("", ".", transform), nil); err != nil {
		return Config{}, fmt.Errorf("config: load env: %w", err)
	}

	return Config{
		Server: ServerConfig{
			Port:           getString(k, "port"),
			RateLimit:      getInt(k, "rate_limit"),
			RateWindow:     getDuration(k, "rate_window"),
			RequestTimeout: getDuration(k, "request_timeout"),
			CORSOrigins:    parseCORSOrigins(k.String("cors_origins")),
			SwaggerUser:    k.String("swagger_user"),
			SwaggerPass:    k.String("swagger_pass"),
			UploadDir:      getString(k, "upload_dir"),
		},
		Catalog: CatalogConfig{
			ProductsPerPage:         getPositiveInt(k, "product_per_page"),
			LatestProductsLimit:     getPositiveInt(k, "latest_products_limit"),
			LatestTransactionsLimit: getPositiveInt(k, "latest_transactions_limit"),
		},
		Database: DatabaseConfig{
			URI:                            getString(k, "mongodb_uri"),
			DatabaseName:                   getString(k, "mongodb_database"),
			LogsTTL:                        getDuration(k, "mongodb_logs_ttl"),
			LogsEnabled:                    getBool(k, "mongodb_logs_enabled"),
			CircuitBreakerFailureThreshold: getPositiveInt(k, "circuit_breaker_failure_threshold"),
			CircuitBreakerSuccessThreshold: getPositiveInt(k, "circuit_breaker_success_threshold"),
			CircuitBreakerTimeout:          getDuration(k, "circuit_breaker_timeout"),
		},
		Log: LogConfig{
			Level:  getString(k, "log_level"),
			Pretty: getBool(k, "log_pretty"),
		},
	}, nil
}

func getString(k *koanf.Koanf, key string) string {
	if v := strings.TrimSpace(k.String(key)); v != "" {
		return v
	}
	return fmt.Sprint(defaults[key])
}

func getInt(k *koanf.Koanf, key string) int {
	if i, err := strconv.Atoi(strings.TrimSpace(k.String(key))); err == nil {
		return i
	}
	return defaults[key].(int)
}

func getPositiveInt(k *koanf.Koanf, key string) int {
	if i := getInt(k, key); i > 0 {
		return i
	}
	return defaults[key].(int)
}

func getBool(k *koanf.Koanf, key string) bool {
	if b, err := strconv.ParseBool(strings.TrimSpace(k.String(key))); err == nil {
		return b
	}
	return defaults[key].(bool)
}

func getDuration(k *koanf.Koanf, key string) time.Duration {
	if d, err := time.ParseDuration(strings.TrimSpace(k.String(key))); err == nil {
		return d
	}
	d, _ := time.ParseDuration(defaults[key].(string))
	return d
}

func parseCORSOrigins(s string) []string {
	// Default origins for local development
	defaults := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	if s == "" {
		return defaults
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts)+len(defaults))
	result = append(result, defaults...)
	for _, p := range parts {
		if origin := strings.TrimSpace(p); origin != "" {
			result = append(result, origin)
		}
	}
	return result
}
