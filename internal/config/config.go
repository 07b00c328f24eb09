package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	DefaultEndpoint   = "https://stats.jup.ag/transactions"
	DefaultWalletFile = "wallets.txt"
)

type Config struct {
	// Remote API
	Endpoint          string
	MaxRetries        int
	BackoffSeconds    float64
	BackoffMultiplier float64
	RequestTimeout    time.Duration

	// Pipeline
	WalletsFile string
	Concurrency int
	FailFast    bool

	// Output
	NoColor  bool
	LogLevel string

	// HTTP server
	HTTPHost         string
	HTTPPort         int
	JWTPublicKeyFile string
	CacheSize        int
	CacheTTL         time.Duration

	// API stub
	StubPort     int
	StubDataFile string
}

// Load reads the configuration from the environment. Values from a .env file in
// the working directory are applied first when the file exists.
func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("godotenv.Load: %w", err)
	}

	cfg := &Config{
		Endpoint:          getEnv("JUP_API_ENDPOINT", DefaultEndpoint),
		MaxRetries:        getEnvInt("MAX_RETRIES", 3),
		BackoffSeconds:    getEnvFloat("BACKOFF_SECONDS", 2),
		BackoffMultiplier: getEnvFloat("BACKOFF_MULTIPLIER", 1),
		RequestTimeout:    getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),

		WalletsFile: getEnv("WALLETS_FILE", DefaultWalletFile),
		Concurrency: getEnvInt("CONCURRENCY", 16),
		FailFast:    getEnvBool("FAIL_FAST", true),

		NoColor:  getEnvBool("NO_COLOR", false),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		HTTPHost:         getEnv("HTTP_HOST", ""),
		HTTPPort:         getEnvInt("HTTP_PORT", 8080),
		JWTPublicKeyFile: getEnv("JWT_PUBLIC_KEY_FILE", ""),
		CacheSize:        getEnvInt("CACHE_SIZE", 1024),
		CacheTTL:         getEnvDuration("CACHE_TTL", 5*time.Minute),

		StubPort:     getEnvInt("STUB_PORT", 8091),
		StubDataFile: getEnv("STUB_DATA_FILE", ""),
	}

	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []string

	if u, err := url.Parse(c.Endpoint); err != nil {
		problems = append(problems, fmt.Sprintf("invalid endpoint %q: %v", c.Endpoint, err))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		problems = append(problems, fmt.Sprintf("invalid endpoint scheme %q: must be http or https", u.Scheme))
	}

	if c.MaxRetries < 1 {
		problems = append(problems, fmt.Sprintf("invalid max retries %d: must be at least 1", c.MaxRetries))
	}

	if c.BackoffSeconds < 0 {
		problems = append(problems, fmt.Sprintf("invalid backoff %v: must not be negative", c.BackoffSeconds))
	}

	if c.BackoffMultiplier < 1 {
		problems = append(problems, fmt.Sprintf("invalid backoff multiplier %v: must be at least 1", c.BackoffMultiplier))
	}

	if c.RequestTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("invalid request timeout %v: must be positive", c.RequestTimeout))
	}

	if c.Concurrency < 0 {
		problems = append(problems, fmt.Sprintf("invalid concurrency %d: must not be negative", c.Concurrency))
	}

	if c.WalletsFile == "" {
		problems = append(problems, "wallets file cannot be empty")
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("invalid log level %q", c.LogLevel))
	}

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		problems = append(problems, fmt.Sprintf("invalid http port %d: must be between 1 and 65535", c.HTTPPort))
	}

	if c.StubPort < 1 || c.StubPort > 65535 {
		problems = append(problems, fmt.Sprintf("invalid stub port %d: must be between 1 and 65535", c.StubPort))
	}

	if c.CacheSize < 0 {
		problems = append(problems, fmt.Sprintf("invalid cache size %d: must not be negative", c.CacheSize))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}

	return nil
}

func (c *Config) Backoff() time.Duration {
	return time.Duration(c.BackoffSeconds * float64(time.Second))
}

// NewLogger returns the standard logrus logger set to the configured level.
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.StandardLogger()

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}

	logger.SetLevel(level)

	return logger
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}

	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}

	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}

	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}

	return defaultValue
}
