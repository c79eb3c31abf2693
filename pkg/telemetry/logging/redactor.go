package logging

import (
	"context"
	"log/slog"
	"regexp"
)

// RedactPattern is a user-supplied redaction rule: any substring matching
// Pattern is replaced by Replacement in logged string values.
type RedactPattern struct {
	Name        string
	Pattern     string
	Replacement string
}

// Built-in PII pattern names.
const (
	PatternEmail       = "email"
	PatternSSN         = "ssn"
	PatternPhone       = "phone"
	PatternCreditCard  = "credit_card"
	PatternBearerToken = "bearer_token"
)

// redactor rewrites string values through a set of compiled PII patterns.
type redactor struct {
	patterns []compiledPattern
}

type compiledPattern struct {
	name        string
	regex       *regexp.Regexp
	replacement string
}

// defaultPatterns are the built-in PII rules. Order matters: more specific
// patterns run before broader ones so replacements do not shadow each other.
var defaultPatterns = []compiledPattern{
	{
		name:        PatternBearerToken,
		regex:       regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9._\-]+`),
		replacement: "Bearer ***",
	},
	{
		name:        PatternEmail,
		regex:       regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`),
		replacement: "***@***",
	},
	{
		name:        PatternSSN,
		regex:       regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
		replacement: "***-**-****",
	},
	{
		name:        PatternCreditCard,
		regex:       regexp.MustCompile(`\b(?:\d[ \-]?){13,16}\b`),
		replacement: "****-****-****-****",
	},
	{
		name:        PatternPhone,
		regex:       regexp.MustCompile(`\b\+?\d{1,2}[ .\-]?\(?\d{3}\)?[ .\-]?\d{3}[ .\-]?\d{4}\b`),
		replacement: "***-***-****",
	},
}

// newRedactor builds a redactor from the built-in patterns plus any custom
// ones. Custom patterns with invalid regular expressions are skipped; a bad
// rule must not take down logging.
func newRedactor(custom []RedactPattern) *redactor {
	r := &redactor{patterns: defaultPatterns}
	for _, p := range custom {
		regex, err := regexp.Compile(p.Pattern)
		if err != nil {
			continue
		}
		r.patterns = append(r.patterns, compiledPattern{
			name:        p.Name,
			regex:       regex,
			replacement: p.Replacement,
		})
	}
	return r
}

// redactString applies every pattern to s.
func (r *redactor) redactString(s string) string {
	for _, p := range r.patterns {
		s = p.regex.ReplaceAllString(s, p.replacement)
	}
	return s
}

// redactValue rewrites string-kinded slog values, descending into groups.
// Non-string values pass through; numbers and booleans carry no free text.
func (r *redactor) redactValue(v slog.Value) slog.Value {
	switch v.Kind() {
	case slog.KindString:
		return slog.StringValue(r.redactString(v.String()))
	case slog.KindGroup:
		attrs := v.Group()
		redacted := make([]slog.Attr, len(attrs))
		for i, a := range attrs {
			redacted[i] = slog.Attr{Key: a.Key, Value: r.redactValue(a.Value)}
		}
		return slog.GroupValue(redacted...)
	default:
		return v
	}
}

// redactingHandler wraps a slog.Handler so every record's message and string
// attributes pass through the redactor before reaching the inner handler.
type redactingHandler struct {
	inner    slog.Handler
	redactor *redactor
}

func newRedactingHandler(inner slog.Handler, r *redactor) *redactingHandler {
	return &redactingHandler{inner: inner, redactor: r}
}

// Enabled implements slog.Handler.
func (h *redactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler. It rewrites the record rather than
// mutating it in place; records may be shared.
func (h *redactingHandler) Handle(ctx context.Context, record slog.Record) error {
	clean := slog.NewRecord(record.Time, record.Level, h.redactor.redactString(record.Message), record.PC)
	record.Attrs(func(a slog.Attr) bool {
		clean.AddAttrs(slog.Attr{Key: a.Key, Value: h.redactor.redactValue(a.Value)})
		return true
	})
	return h.inner.Handle(ctx, clean)
}

// WithAttrs implements slog.Handler, redacting the pre-bound attributes.
func (h *redactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		redacted[i] = slog.Attr{Key: a.Key, Value: h.redactor.redactValue(a.Value)}
	}
	return &redactingHandler{inner: h.inner.WithAttrs(redacted), redactor: h.redactor}
}

// WithGroup implements slog.Handler.
func (h *redactingHandler) WithGroup(name string) slog.Handler {
	return &redactingHandler{inner: h.inner.WithGroup(name), redactor: h.redactor}
}
