// Package logging provides structured logging for the factorize CLI.
//
// This package wraps Go's log/slog to provide JSON-formatted logs with
// context propagation. Logging is off unless enabled in the configuration
// or with --debug; when enabled, each factorized number produces entries
// for parsing, validation and decomposition that can be filtered afterwards.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger("/path/to/logs", "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.Info("decomposed", "steps", 3, "duration_ms", 0)
//
// # Context Propagation
//
// Create child loggers with persistent context attributes:
//
//	numLogger := logger.WithCommand("factorize").WithNumber("360")
//	numLogger.Debug("validated", "digits", 3)
//
// Output:
//
//	{"time":"...","level":"DEBUG","msg":"validated","command":"factorize","number":"360","digits":3}
//
// # Log Levels
//
//   - DEBUG: per-number parse, validation and ladder details
//   - INFO: one entry per factorized number
//   - WARN: rejected input and user-facing failures such as timeouts
//   - ERROR: unexpected failures
//
// # Rotation
//
// [NewLoggerWithRotation] caps debug.log at a configured size and shifts
// older contents to debug.log.1, debug.log.2 and so on.
//
// A [NopLogger] discards everything and is the default when logging is off.
package logging
