// Package log builds the slog loggers used by cihelper.
//
// Diagnostics go to stderr as text. The default level is Warn so that CI logs
// only show problems; --verbose switches to Debug. Reports and echoed warning
// lines are written to stdout directly and never pass through the logger.
//
// # Redaction
//
// The RedactingHandler masks attribute values that look like CI credentials
// before they are written:
//   - attributes whose key names a secret (token, password, secret, auth, ...)
//   - GitHub and GitLab access tokens anywhere in a string value
//   - bearer and basic authorization values
//
// Command lines of child processes are logged at debug level and may carry
// tokens passed by the CI system, which is why redaction is always on.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//	logger.Debug("starting documentation generator", "arg", "Doxyfile")
package log
