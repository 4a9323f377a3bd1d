// Package logger provides namespaced debug logging for runsift.
//
// Loggers are created per file with a "package:file" namespace and stay
// silent unless the RUNSIFT_DEBUG environment variable matches the
// namespace. Patterns are comma-separated and support a trailing "*"
// wildcard, e.g. RUNSIFT_DEBUG=cli:* or RUNSIFT_DEBUG=* for everything.
package logger

import (
	"log"
	"os"
	"strings"

	"github.com/runsift/runsift/pkg/constants"
)

// Logger writes debug output for a single namespace when enabled.
type Logger struct {
	namespace string
	enabled   bool
	out       *log.Logger
}

// New creates a logger for the given namespace. Enablement is decided once
// at construction from the environment.
func New(namespace string) *Logger {
	return &Logger{
		namespace: namespace,
		enabled:   enabled(namespace, os.Getenv(constants.DebugEnvVar)),
		out:       log.New(os.Stderr, namespace+" ", log.Ltime|log.Lmicroseconds),
	}
}

// Print logs its arguments when the namespace is enabled.
func (l *Logger) Print(v ...any) {
	if l.enabled {
		l.out.Print(v...)
	}
}

// Printf logs a formatted message when the namespace is enabled.
func (l *Logger) Printf(format string, v ...any) {
	if l.enabled {
		l.out.Printf(format, v...)
	}
}

// enabled reports whether any comma-separated pattern matches the namespace.
func enabled(namespace, patterns string) bool {
	for _, pattern := range strings.Split(patterns, ",") {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if pattern == "*" || pattern == namespace {
			return true
		}
		if prefix, ok := strings.CutSuffix(pattern, "*"); ok && strings.HasPrefix(namespace, prefix) {
			return true
		}
	}
	return false
}
