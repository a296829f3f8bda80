package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Matching MatchingConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout time.Duration
	PoolMaxConns   int32
	PoolMinConns   int32
}

// MatchingConfig holds the match-engine tunables. Defaults mirror the
// documented scoring policy; every knob can be overridden per deploy.
type MatchingConfig struct {
	// CandidateLimit caps how many opposite-side rows are loaded and
	// scored per request.
	CandidateLimit int
	// MinScore drops candidates scoring below it from the response.
	MinScore float64
	// Workers bounds the concurrent scoring goroutines per request.
	Workers int
	// StatsCacheTTL controls how long matching stats stay cached.
	StatsCacheTTL time.Duration
}

const (
	defaultCandidateLimit = 100
	defaultMinScore       = 0.3
	defaultWorkers        = 8
	defaultStatsCacheTTL  = 60 * time.Second
)

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	// Best effort: a missing .env file is the normal production case.
	_ = godotenv.Load()

	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:         opt("DB_HOST"),
		DBPort:         opt("DB_PORT"),
		DBName:         opt("DB_NAME"),
		DBUser:         opt("DB_USER"),
		DBPassword:     opt("DB_PASSWORD"),
		DBSSLMode:      opt("DB_SSL_MODE"),
		ConnectTimeout: optDuration("DB_CONNECT_TIMEOUT", 0),
		PoolMaxConns:   int32(optInt("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:   int32(optInt("DB_POOL_MIN_CONNS", 0)),
	}

	cfg.Matching = MatchingConfig{
		CandidateLimit: optInt("MATCH_CANDIDATE_LIMIT", defaultCandidateLimit),
		MinScore:       optFloat("MATCH_MIN_SCORE", defaultMinScore),
		Workers:        optInt("MATCH_WORKERS", defaultWorkers),
		StatsCacheTTL:  optDuration("MATCH_STATS_CACHE_TTL", defaultStatsCacheTTL),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func optInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func optFloat(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func optDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
