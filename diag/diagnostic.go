package diag

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Severity of a diagnostic.
type Severity int

const (
	Warning Severity = iota
	Fatal
)

func (s Severity) String() string {
	if s == Fatal {
		return "fatal"
	}
	return "warning"
}

// Diagnostic is a single reportable problem.
type Diagnostic struct {
	Kind     Kind
	Severity Severity
	Part     string
	Offset   int64 // -1 when unknown
	Message  string
}

func (d Diagnostic) String() string {
	loc := d.Part
	if d.Offset >= 0 && loc != "" {
		loc = fmt.Sprintf("%s@%d", loc, d.Offset)
	}
	if loc == "" {
		return fmt.Sprintf("%s %s: %s", d.Severity, d.Kind, d.Message)
	}
	return fmt.Sprintf("%s %s [%s]: %s", d.Severity, d.Kind, loc, d.Message)
}

// Collector accumulates soft diagnostics in the order they are reported.
// A nil *Collector discards everything. It is safe for concurrent use.
type Collector struct {
	mu   sync.Mutex
	log  *zap.Logger
	list []Diagnostic
	seen map[string]bool
}

// NewCollector returns a collector that also logs each diagnostic to log.
// A nil logger is replaced with a no-op logger.
func NewCollector(log *zap.Logger) *Collector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Collector{log: log, seen: make(map[string]bool)}
}

// Add records d.
func (c *Collector) Add(d Diagnostic) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.list = append(c.list, d)
	c.mu.Unlock()

	fields := []zap.Field{
		zap.Stringer("kind", d.Kind),
		zap.Stringer("severity", d.Severity),
	}
	if d.Part != "" {
		fields = append(fields, zap.String("part", d.Part))
	}
	if d.Offset >= 0 {
		fields = append(fields, zap.Int64("offset", d.Offset))
	}
	if d.Severity == Fatal {
		c.log.Error(d.Message, fields...)
		return
	}
	c.log.Warn(d.Message, fields...)
}

// Warn records a warning with no offset.
func (c *Collector) Warn(kind Kind, part, format string, args ...any) {
	c.Add(Diagnostic{Kind: kind, Severity: Warning, Part: part, Offset: -1, Message: fmt.Sprintf(format, args...)})
}

// WarnOnce records a warning only the first time key is seen.
func (c *Collector) WarnOnce(key string, kind Kind, part, format string, args ...any) {
	if c == nil {
		return
	}
	c.mu.Lock()
	if c.seen[key] {
		c.mu.Unlock()
		return
	}
	c.seen[key] = true
	c.mu.Unlock()
	c.Warn(kind, part, format, args...)
}

// AddError records err as a warning. Errors that are not *Error are
// recorded with the given fallback kind. Joined errors are recorded one
// by one.
func (c *Collector) AddError(kind Kind, part string, err error) {
	c.addError(kind, part, err, false)
}

// AddErrorOnce is AddError that skips errors whose message has already
// been recorded through AddErrorOnce.
func (c *Collector) AddErrorOnce(kind Kind, part string, err error) {
	c.addError(kind, part, err, true)
}

func (c *Collector) addError(kind Kind, part string, err error, once bool) {
	if c == nil || err == nil {
		return
	}
	var e *Error
	if !errors.As(err, &e) || e != err {
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, inner := range joined.Unwrap() {
				c.addError(kind, part, inner, once)
			}
			return
		}
	}
	if once {
		key := "err:" + err.Error()
		c.mu.Lock()
		dup := c.seen[key]
		c.seen[key] = true
		c.mu.Unlock()
		if dup {
			return
		}
	}
	if e != nil {
		c.Add(e.Diagnostic(Warning))
		return
	}
	c.Add(Diagnostic{Kind: kind, Severity: Warning, Part: part, Offset: -1, Message: err.Error()})
}

// Logger returns the logger diagnostics are written to.
func (c *Collector) Logger() *zap.Logger {
	if c == nil {
		return zap.NewNop()
	}
	return c.log
}

// Len returns the number of diagnostics recorded.
func (c *Collector) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.list)
}

// Diagnostics returns a copy of the recorded diagnostics.
func (c *Collector) Diagnostics() []Diagnostic {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.list))
	copy(out, c.list)
	return out
}
