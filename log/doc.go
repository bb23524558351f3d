// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// The package offers configurable time formatting, caller information,
// and output formats that are applied at logger creation time using
// functional options.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("generated output", slog.Int("lines", n))
//
// # Configuration
//
// Configure the logger using functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// # Default Logger
//
// Package-level functions ([Debug], [Info], [Warn], [Error]) use a
// process-wide default logger writing to standard error. [Config] updates
// its configuration in place, which the CLI uses to apply --log-* flags
// as early as possible during argument parsing.
package log
