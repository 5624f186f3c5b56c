// Package ports defines the core interfaces for the application.
package ports

// Logger defines the interface for logging. Warn accepts optional key/value
// diagnostic pairs in slog style.
//
//go:generate go run go.uber.org/mock/mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	Debug(msg string)
	Info(msg string)
	Warn(msg string, args ...any)
	Error(err error)
}
