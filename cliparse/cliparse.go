// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Authorization models
const (
	AuthModelOrganization = "organization"
	AuthModelAssignment   = "assignment"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	JWTSecret    string
	AuthModel    string
	BaseURL      string
	CORSOrigins  []string

	LogLevel  string
	LogFormat string

	VoteRateLimit float64
	VoteRateBurst int

	// First-run bootstrap: a super admin invite and its organization
	BootstrapAdminEmail string
	BootstrapOrgName    string

	EnvFile string
}

// ParseFlags validates flags and fills the rest from the environment.
// Precedence: flag > environment > env file > default.
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("auto-bean", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (postgres or sqlite)")
	fs.StringVar(&cfg.BaseURL, "base-url", "", "Public base URL used in voter and brewer links")
	corsOrigins := fs.String("cors-origins", "", "Comma-separated allowed CORS origins (default *)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", "", "JWT signing secret (prefer env)")

	fs.StringVar(&cfg.AuthModel, "auth-model", "", "Admin scope model (organization or assignment)")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", "", "Log format (json or text)")
	fs.Float64Var(&cfg.VoteRateLimit, "vote-rate", 0, "Public write requests per second per client")
	fs.IntVar(&cfg.VoteRateBurst, "vote-burst", 0, "Public write burst per client")
	fs.StringVar(&cfg.BootstrapAdminEmail, "bootstrap-admin", "", "Invite a super admin when no admins exist")
	fs.StringVar(&cfg.BootstrapOrgName, "bootstrap-org", "", "Organization for the bootstrap admin")
	fs.StringVar(&cfg.EnvFile, "env-file", ".env", "Env file to load (missing file is ignored)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Env file never overrides variables that are already set
	if cfg.EnvFile != "" {
		if err := godotenv.Load(cfg.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load env file: %w", err)
		}
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	cfg.DatabaseType = firstNonEmpty(cfg.DatabaseType, os.Getenv("DATABASE_TYPE"), "postgres")
	if cfg.DatabaseType != "postgres" && cfg.DatabaseType != "sqlite" {
		return Config{}, fmt.Errorf("invalid database type %q (use postgres or sqlite)", cfg.DatabaseType)
	}

	// Secrets - MUST be provided
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("JWT_SECRET")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET required")
	}

	cfg.AuthModel = firstNonEmpty(cfg.AuthModel, os.Getenv("AUTH_MODEL"), AuthModelOrganization)
	if cfg.AuthModel != AuthModelOrganization && cfg.AuthModel != AuthModelAssignment {
		return Config{}, fmt.Errorf("invalid auth model %q (use organization or assignment)", cfg.AuthModel)
	}

	cfg.BaseURL = firstNonEmpty(cfg.BaseURL, os.Getenv("BASE_URL"), fmt.Sprintf("http://localhost:%d", cfg.Port))
	cfg.CORSOrigins = splitList(firstNonEmpty(*corsOrigins, os.Getenv("CORS_ORIGINS"), "*"))
	cfg.LogLevel = firstNonEmpty(cfg.LogLevel, os.Getenv("LOG_LEVEL"), "info")
	cfg.LogFormat = firstNonEmpty(cfg.LogFormat, os.Getenv("LOG_FORMAT"), "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return Config{}, fmt.Errorf("invalid log format %q (use json or text)", cfg.LogFormat)
	}

	if cfg.VoteRateLimit == 0 {
		v, err := envFloat("VOTE_RATE_LIMIT", 5)
		if err != nil {
			return Config{}, err
		}
		cfg.VoteRateLimit = v
	}
	if cfg.VoteRateBurst == 0 {
		v, err := envInt("VOTE_RATE_BURST", 20)
		if err != nil {
			return Config{}, err
		}
		cfg.VoteRateBurst = v
	}
	if cfg.VoteRateLimit <= 0 || cfg.VoteRateBurst <= 0 {
		return Config{}, errors.New("vote rate and burst must be positive")
	}

	cfg.BootstrapAdminEmail = firstNonEmpty(cfg.BootstrapAdminEmail, os.Getenv("BOOTSTRAP_ADMIN_EMAIL"))
	cfg.BootstrapOrgName = firstNonEmpty(cfg.BootstrapOrgName, os.Getenv("BOOTSTRAP_ORG_NAME"), "Default")

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// splitList splits a comma-separated value, dropping blanks
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envFloat(key string, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return v, nil
}

func envInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return v, nil
}
