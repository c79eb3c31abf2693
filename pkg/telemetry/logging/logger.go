package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"

	"piisec-hq/piisec/pkg/config"
)

// Format selects the output encoding for log records.
type Format string

const (
	// FormatJSON emits one JSON object per record.
	FormatJSON Format = "json"
	// FormatText emits key=value text records.
	FormatText Format = "text"
	// FormatConsole is human-readable text for interactive use.
	FormatConsole Format = "console"
)

// DefaultNamespace is the logger namespace used when none is given.
const DefaultNamespace = "piisec"

var (
	// configured is the write-once latch: set on the first successful
	// Configure and never reset for the process lifetime.
	configured atomic.Bool

	// level is the active backend level. Installed once by Configure;
	// a LevelVar so tests can observe that reloads leave it untouched.
	level = new(slog.LevelVar)

	// output is where configured handlers write. Overridable before
	// Configure for tests and embedding.
	output io.Writer = os.Stdout
)

// Configure shapes the global logging backend from the effective
// configuration and reports whether this call performed the initialization.
// It is a no-op returning false once the backend has been configured; the
// latch is never reset, so reloads re-evaluate their inputs in vain by
// design.
//
// Level precedence: PIISEC_LOG_LEVEL environment variable, then
// logging.level from cfg, then INFO. Format comes from logging.format,
// defaulting to JSON. Unrecognized names fall back silently.
func Configure(cfg config.Tree) bool {
	if !configured.CompareAndSwap(false, true) {
		return false
	}

	levelName := os.Getenv(config.EnvLogLevel)
	if levelName == "" {
		levelName = cfg.String("logging.level", config.DefaultLoggingLevel)
	}
	level.Set(parseLevel(levelName))

	format := parseFormat(cfg.String("logging.format", config.DefaultLoggingFormat))

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch format {
	case FormatText, FormatConsole:
		handler = slog.NewTextHandler(output, opts)
	default:
		handler = slog.NewJSONHandler(output, opts)
	}

	if cfg.Bool("logging.redact_pii", true) {
		handler = newRedactingHandler(handler, newRedactor(customPatterns(cfg)))
	}

	slog.SetDefault(slog.New(handler))
	return true
}

// Configured reports whether the backend has been configured.
func Configured() bool {
	return configured.Load()
}

// ActiveLevel returns the level the backend was configured with. Before
// Configure it returns the zero level (INFO).
func ActiveLevel() slog.Level {
	return level.Level()
}

// SetOutput redirects configured handlers to w. It only has effect before
// the first Configure call; afterwards the backend is immutable.
func SetOutput(w io.Writer) {
	output = w
}

// Named returns a logger handle for the given namespace. An empty name
// selects DefaultNamespace. The handle shares the process-global backend, so
// handles obtained before Configure pick up the configured backend on use.
func Named(name string) *slog.Logger {
	if name == "" {
		name = DefaultNamespace
	}
	return slog.Default().With("logger", name)
}

// parseLevel maps a severity name to a slog level, case-insensitively.
// Unrecognized names fall back to INFO; a bad level is not worth refusing
// to start over.
func parseLevel(name string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// parseFormat maps a format name to a Format, falling back to JSON.
func parseFormat(name string) Format {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "text":
		return FormatText
	case "console":
		return FormatConsole
	default:
		return FormatJSON
	}
}

// customPatterns decodes logging.redact_patterns entries from the tree.
// Entries are mappings with name, pattern, and replacement keys; anything
// else is skipped.
func customPatterns(cfg config.Tree) []RedactPattern {
	raw, ok := cfg.Value("logging.redact_patterns")
	if !ok {
		return nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	patterns := make([]RedactPattern, 0, len(list))
	for _, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		tree := config.Tree(entry)
		p := RedactPattern{
			Name:        tree.String("name", ""),
			Pattern:     tree.String("pattern", ""),
			Replacement: tree.String("replacement", "***"),
		}
		if p.Name == "" || p.Pattern == "" {
			continue
		}
		patterns = append(patterns, p)
	}
	return patterns
}
