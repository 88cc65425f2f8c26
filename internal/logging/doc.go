// Package logging provides structured logging helpers for kube-explorer.
//
// All logging goes through the standard library's slog package. This package
// only fixes attribute names and scrubs values that should not reach logs.
//
// # Usage Patterns
//
//	logger := logging.WithOperation(slog.Default(), "catalog.refresh")
//	logger.Info("listed kind",
//	    logging.Kind("pods"),
//	    logging.Count(len(items)),
//	    logging.Duration(time.Since(start)))
//
// Errors returned by the API server should be logged with SanitizedErr, which
// redacts IP addresses:
//
//	logger.Warn("list failed", logging.Kind("pods"), logging.SanitizedErr(err))
//
// Components that take an injected logger accept the Logger interface;
// SlogAdapter satisfies it.
package logging
