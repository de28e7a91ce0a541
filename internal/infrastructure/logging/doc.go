// Package logging provides structured logging for Casedesk Core.
//
// It wraps log/slog with:
//   - Configurable output format (JSON or text)
//   - Level-based filtering (debug, info, warn, error)
//   - Default service/version attributes on every record
//
// Usage:
//
//	log := logging.New(cfg.Logging, version)
//	log.Info("server starting", "port", cfg.API.Port)
//
// Component loggers carry a default attribute:
//
//	apiLog := log.With("component", "api")
package logging
