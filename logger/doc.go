// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package logger configures the process-wide slog logger.
//
//	slog.SetDefault(logger.New(logger.Config{
//		Format: cfg.LogFormat,
//		Level:  logger.ParseLevel(cfg.LogLevel),
//	}))
package logger
