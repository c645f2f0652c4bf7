// Package diagnostics implements the front-end's own severity-tagged,
// location-pinned reports. Unlike wakeerrors (used for failures that
// cross component boundaries before any source location exists), a
// Diagnostic always names a place in a source.File: a lexical error, a
// layout inconsistency, a parse error, or a desugarer sanity check.
//
// The parser and desugarer never throw: they push Diagnostics to a
// shared Sink and keep going, producing a best-effort partial tree so
// downstream tooling still has something to walk.
package diagnostics

import (
	"fmt"

	"github.com/jinrudals/wake/source"
)

// Severity classifies a Diagnostic. The integer values below (via
// LSPSeverity) are a stable external protocol and must not change.
type Severity int

const (
	ERROR Severity = iota
	WARNING
	INFO
)

func (s Severity) String() string {
	switch s {
	case ERROR:
		return "error"
	case WARNING:
		return "warning"
	case INFO:
		return "info"
	default:
		return "unknown"
	}
}

// LSPSeverity maps a Severity to the LSP DiagnosticSeverity integer.
// ERROR → 1, WARNING → 2, INFO → 3.
func (s Severity) LSPSeverity() int {
	switch s {
	case ERROR:
		return 1
	case WARNING:
		return 2
	case INFO:
		return 3
	default:
		return 1
	}
}

// Diagnostic is a single severity-tagged report pinned to a source
// Location.
type Diagnostic struct {
	Severity Severity
	Location source.Location
	Message  string
}

// String renders a Diagnostic for console output as
// "file:row:col-row:col: severity: message".
func (d Diagnostic) String() string {
	l := d.Location
	return fmt.Sprintf("%s:%d:%d-%d:%d: %s: %s",
		l.Filename, l.Start.Row, l.Start.Column, l.End.Row, l.End.Column,
		d.Severity, d.Message)
}

// Range is the LSP wire representation of a Location: 0-based line and
// character, floored at 0. The spec's "end column may be -1 before
// flooring" case arises when a token's last byte is itself the newline
// that ends the line; RangeOf subtracts 1 from both row and column,
// then floors each coordinate independently at 0.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Position is a 0-based (line, character) pair, per the LSP protocol.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

func floor0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// RangeOf converts a source.Location to an LSP Range.
func RangeOf(l source.Location) Range {
	return Range{
		Start: Position{Line: floor0(l.Start.Row - 1), Character: floor0(l.Start.Column - 1)},
		End:   Position{Line: floor0(l.End.Row - 1), Character: floor0(l.End.Column - 1)},
	}
}

// Sink accumulates Diagnostics in discovery order. Diagnostics are
// never mutated once pushed, and the sink itself is the only state a
// parser/desugar invocation shares across the pipeline's stages.
//
// Ordering guarantees: tokens are emitted in source order, so lexical
// and layout diagnostics land in source order; parse-error diagnostics
// land in source order because the parser discovers them while shifting
// tokens forward; desugar diagnostics land in CST pre-order traversal
// order, top-level forms in file order.
type Sink struct {
	diags []Diagnostic
}

// NewSink returns an empty Sink.
func NewSink() *Sink { return &Sink{} }

// Push appends a Diagnostic to the sink.
func (s *Sink) Push(d Diagnostic) { s.diags = append(s.diags, d) }

// Errorf pushes an ERROR-severity diagnostic formatted like fmt.Sprintf.
func (s *Sink) Errorf(loc source.Location, format string, args ...interface{}) {
	s.Push(Diagnostic{Severity: ERROR, Location: loc, Message: fmt.Sprintf(format, args...)})
}

// Warnf pushes a WARNING-severity diagnostic formatted like fmt.Sprintf.
func (s *Sink) Warnf(loc source.Location, format string, args ...interface{}) {
	s.Push(Diagnostic{Severity: WARNING, Location: loc, Message: fmt.Sprintf(format, args...)})
}

// Infof pushes an INFO-severity diagnostic formatted like fmt.Sprintf.
func (s *Sink) Infof(loc source.Location, format string, args ...interface{}) {
	s.Push(Diagnostic{Severity: INFO, Location: loc, Message: fmt.Sprintf(format, args...)})
}

// All returns every Diagnostic pushed so far, in discovery order.
func (s *Sink) All() []Diagnostic { return s.diags }

// HasSeverity reports whether any pushed Diagnostic is at or above (in
// urgency) the given Severity: ERROR is the most urgent, INFO the
// least, so HasSeverity(WARNING) is true if any ERROR or WARNING was
// pushed.
func (s *Sink) HasSeverity(min Severity) bool {
	for _, d := range s.diags {
		if d.Severity <= min {
			return true
		}
	}
	return false
}

// Merge appends other's diagnostics to s, in other's order. Used by the
// driver to join per-file sinks (collected concurrently) back into file
// order deterministically.
func (s *Sink) Merge(other *Sink) {
	s.diags = append(s.diags, other.diags...)
}
