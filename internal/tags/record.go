// Package tags parses ctags-format tags files into symbol records and
// collects them into name-sorted navigation candidates.
//
// A tags line has the shape
//
//	{name}\t{file}\t{addr}[;"\t{kind}[\t{scope}...]]
//
// where {addr} is a bare line number or a /pattern/ (?pattern?) search
// expression. Lines starting with "!" are pragma lines and are skipped.
package tags

import (
	"errors"
	"strconv"
)

// ErrSkipLine reports a line that cannot produce a usable record.
// Callers drop the line and keep reading.
var ErrSkipLine = errors.New("skip tag line")

// Record is one parsed tags line.
type Record struct {
	Name    string `json:"name"`
	File    string `json:"file"`              // absolute path to the source file
	Line    string `json:"line,omitempty"`    // verbatim line address
	Pattern string `json:"pattern,omitempty"` // escaped search pattern
	Kind    string `json:"kind,omitempty"`
	Scope   string `json:"scope,omitempty"` // remaining extension fields
}

// LineNumber returns the line address as an int.
// ok is false when the record has no line address or it is not numeric.
func (r Record) LineNumber() (n int, ok bool) {
	if r.Line == "" {
		return 0, false
	}
	n, err := strconv.Atoi(r.Line)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Ref is the navigation reference: the line address if set, else the pattern.
func (r Record) Ref() string {
	if r.Line != "" {
		return r.Line
	}
	return r.Pattern
}
