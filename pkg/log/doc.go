// Package log provides the logging abstraction used across the steam packages.
//
// Library packages such as resolver accept a Logger and default to the no-op
// implementation, so embedding applications decide where output goes. The
// command line tool and the HTTP server build a zerolog-backed logger from
// configuration:
//
//	logger, err := log.New(log.Options{Level: "debug", Format: "json", Out: os.Stderr})
//
// Tests use the no-op logger:
//
//	logger := log.NewNoopLogger()
//
// # Custom Loggers
//
// Implement the Logger interface to route messages elsewhere:
//
//	func (l *MyLogger) Debug(msg string, fields ...log.Field) { ... }
//	func (l *MyLogger) Info(msg string, fields ...log.Field) { ... }
//	func (l *MyLogger) Warn(msg string, fields ...log.Field) { ... }
//	func (l *MyLogger) Error(msg string, fields ...log.Field) { ... }
//	func (l *MyLogger) With(fields ...log.Field) log.Logger { ... }
//
// # Version
//
// Current version: 1.1.0
// Minimum compatible version: 1.1.0
//
// See version.go for version constants that can be used programmatically.
package log
