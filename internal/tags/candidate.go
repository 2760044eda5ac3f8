package tags

import "fmt"

// Candidate is a display entry for one record, ready for a matching layer.
// Exactly one of Line and Pattern is set unless the record had no address.
type Candidate struct {
	Word    string `json:"word"`
	Abbr    string `json:"abbr"`
	Path    string `json:"path"`
	Line    string `json:"line,omitempty"`
	Pattern string `json:"pattern,omitempty"`
	Kind    string `json:"kind,omitempty"`
	Scope   string `json:"scope,omitempty"`
	TagFile string `json:"tag_file,omitempty"`
}

// NewCandidate builds the candidate for rec, read from tagFile.
func NewCandidate(rec Record, tagFile string) Candidate {
	c := Candidate{
		Word:    rec.Name,
		Abbr:    DisplayText(rec),
		Path:    rec.File,
		Kind:    rec.Kind,
		Scope:   rec.Scope,
		TagFile: tagFile,
	}
	if rec.Line != "" {
		c.Line = rec.Line
	} else {
		c.Pattern = rec.Pattern
	}
	return c
}

// DisplayText renders "{name} [{kind}] {file} {ref}", dropping the kind
// segment when the record has none.
func DisplayText(rec Record) string {
	if rec.Kind != "" {
		return fmt.Sprintf("%s [%s] %s %s", rec.Name, rec.Kind, rec.File, rec.Ref())
	}
	return fmt.Sprintf("%s %s %s", rec.Name, rec.File, rec.Ref())
}
