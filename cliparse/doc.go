// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: PostgreSQL URL or SQLite path (required)
  - DatabaseType: postgres or sqlite (default: postgres)
  - JWTSecret: Secret shared with the identity provider (required)
  - AuthModel: organization or assignment (default: organization)
  - BaseURL: Public origin for voter and brewer links
  - LogLevel, LogFormat: slog level and json/text output
  - VoteRateLimit, VoteRateBurst: per-client limit on public writes (5/s, burst 20)
  - BootstrapAdminEmail, BootstrapOrgName: first-run super admin invite

# CLI Flags

	-p                Server port
	-d                Database URL
	-t                Database type
	--jwt-secret      JWT secret
	--auth-model      Scope model
	--base-url        Public base URL
	--log-level       Log level
	--log-format      Log format
	--vote-rate       Requests per second
	--vote-burst      Burst size
	--bootstrap-admin Super admin email
	--bootstrap-org   Bootstrap organization name
	--env-file        Env file (default .env)

# Environment Variables

Flags fall back to environment variables:

	PORT                  → -p
	DATABASE_URL          → -d
	DATABASE_TYPE         → -t
	JWT_SECRET            → --jwt-secret
	AUTH_MODEL            → --auth-model
	BASE_URL              → --base-url
	LOG_LEVEL             → --log-level
	LOG_FORMAT            → --log-format
	VOTE_RATE_LIMIT       → --vote-rate
	VOTE_RATE_BURST       → --vote-burst
	BOOTSTRAP_ADMIN_EMAIL → --bootstrap-admin
	BOOTSTRAP_ORG_NAME    → --bootstrap-org

CLI flags take precedence over environment variables. The env file is
loaded with godotenv and never overrides variables already set.

# Validation

ParseFlags returns an error if required values are missing or an enum
value is unknown.
*/
package cliparse
