package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	log    zerolog.Logger
	output io.Writer = os.Stdout
	mu     sync.RWMutex
)

// orderedJSONWriter ensures consistent field ordering in JSON output
type orderedJSONWriter struct {
	output io.Writer
}

// Write reorders time, level, scope and message to the front of each line
func (w *orderedJSONWriter) Write(p []byte) (n int, err error) {
	var logData map[string]interface{}
	if err := json.Unmarshal(p, &logData); err != nil {
		return w.output.Write(p)
	}

	fieldOrder := []string{"time", "level", "scope", "message"}
	processed := make(map[string]bool, len(fieldOrder))
	parts := make([]string, 0, len(logData))

	for _, field := range fieldOrder {
		if value, exists := logData[field]; exists {
			jsonValue, _ := json.Marshal(value)
			parts = append(parts, fmt.Sprintf(`"%s":%s`, field, jsonValue))
			processed[field] = true
		}
	}

	for key, value := range logData {
		if !processed[key] {
			jsonValue, _ := json.Marshal(value)
			parts = append(parts, fmt.Sprintf(`"%s":%s`, key, jsonValue))
		}
	}

	if _, err := w.output.Write([]byte("{" + strings.Join(parts, ",") + "}\n")); err != nil {
		return 0, err
	}
	return len(p), nil
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().In(time.UTC)
	}
	build(output, zerolog.InfoLevel)
}

// build swaps the global logger, callers hold no lock
func build(w io.Writer, level zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()
	log = zerolog.New(w).With().Timestamp().Logger().Level(level)
	zerolog.DefaultContextLogger = &log
}

// current returns the global logger under read lock
func current() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := log
	return &l
}

// Init configures the logger with timezone settings
func Init(timezone, environment string) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
		current().Warn().Err(err).Str("timezone", timezone).Msg("Invalid timezone, using UTC")
	}

	zerolog.TimestampFieldName = "time"
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.LevelFieldName = "level"
	zerolog.MessageFieldName = "message"
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().In(loc)
	}

	// Production writes raw zerolog JSON; everything else gets the ordered writer
	var writer io.Writer = &orderedJSONWriter{output: output}
	level := zerolog.DebugLevel
	if environment == "prod" {
		writer = output
		level = zerolog.InfoLevel
	}
	build(writer, level)

	current().Info().Str("timezone", loc.String()).Str("environment", environment).Msg("Logger reconfigured")
}

// SetOutput redirects every subsequent log line to w
func SetOutput(w io.Writer) {
	output = w
	build(w, current().GetLevel())
}

// Debug returns an debug level log event
func Debug() *zerolog.Event {
	return current().Debug()
}

// Info returns an info level log event
func Info() *zerolog.Event {
	return current().Info()
}

// Warn returns a warning level log event
func Warn() *zerolog.Event {
	return current().Warn()
}

// Error returns an error level log event
func Error() *zerolog.Event {
	return current().Error()
}

// Fatal returns a fatal level log event
func Fatal() *zerolog.Event {
	return current().Fatal()
}

// Logger exposes the configured zerolog instance for libraries that take one
func Logger() zerolog.Logger {
	return *current()
}

// ScopedLogger represents a logger with predefined scope
type ScopedLogger struct {
	logger zerolog.Logger
	scope  string
}

// WithScope creates a new scoped logger instance with predefined scope
func WithScope(scope string) *ScopedLogger {
	return &ScopedLogger{
		logger: current().With().Str("scope", scope).Logger(),
		scope:  scope,
	}
}

func (s *ScopedLogger) Debug() *zerolog.Event {
	return s.logger.Debug()
}

func (s *ScopedLogger) Info() *zerolog.Event {
	return s.logger.Info()
}

func (s *ScopedLogger) Warn() *zerolog.Event {
	return s.logger.Warn()
}

func (s *ScopedLogger) Error() *zerolog.Event {
	return s.logger.Error()
}

func (s *ScopedLogger) Fatal() *zerolog.Event {
	return s.logger.Fatal()
}

// GetScope returns the current scope name
func (s *ScopedLogger) GetScope() string {
	return s.scope
}
