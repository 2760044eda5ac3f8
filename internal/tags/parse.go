package tags

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// addressTerminator ends the tag address when extension fields follow.
const addressTerminator = `;"`

// patternSpecials are escaped with a backslash inside search patterns.
const patternSpecials = `~.*[]\`

// Parser turns tags lines into records.
type Parser struct {
	// Exists reports whether a path exists as given. It is consulted on
	// every parse to decide how a file reference is resolved.
	// Nil means os.Stat.
	Exists func(path string) bool
}

var defaultParser = &Parser{}

// ParseLine parses line with the default parser.
func ParseLine(line, tagsFile string) (Record, error) {
	return defaultParser.Parse(line, tagsFile)
}

// Parse parses a single tags line read from tagsFile.
// Lines that cannot produce a record return an error wrapping ErrSkipLine.
func (p *Parser) Parse(line, tagsFile string) (Record, error) {
	fields := splitFields(line)
	if len(fields) < 2 {
		return Record{}, fmt.Errorf("%w: expected at least 2 fields, got %d", ErrSkipLine, len(fields))
	}
	if fields[0] == "" {
		return Record{}, fmt.Errorf("%w: empty name", ErrSkipLine)
	}

	rec := Record{
		Name: fields[0],
		File: p.resolveFile(fields[1], tagsFile),
	}

	// The extension blob may itself contain tabs, so rebuild it.
	rest := strings.Join(fields[2:], "\t")
	addr, ok := findAddress(rest)
	if !ok {
		if len(fields) >= 3 {
			rec.Line = fields[2]
		}
		return rec, nil
	}

	if isLineAddress(addr) {
		rec.Line = strings.TrimSuffix(addr, addressTerminator)
	} else {
		rec.Pattern = escapePattern(patternAddress(addr))
	}

	rec.Kind, rec.Scope = splitExtensions(remainder(rest, addr))
	return rec, nil
}

func (p *Parser) exists(path string) bool {
	if p.Exists != nil {
		return p.Exists(path)
	}
	_, err := os.Stat(path)
	return err == nil
}

// splitFields splits a tags line on tab characters.
func splitFields(line string) []string {
	return strings.Split(line, "\t")
}

// resolveFile maps a file reference to an absolute path. References that
// exist as given win; anything else is taken relative to the tags file.
func (p *Parser) resolveFile(ref, tagsFile string) string {
	if p.exists(ref) {
		if abs, err := filepath.Abs(ref); err == nil {
			return abs
		}
		return filepath.Clean(ref)
	}
	if filepath.IsAbs(ref) {
		return filepath.Clean(ref)
	}
	return filepath.Join(filepath.Dir(tagsFile), ref)
}

// findAddress returns the prefix of rest that ends at the rightmost
// address terminator.
func findAddress(rest string) (string, bool) {
	i := strings.LastIndex(rest, addressTerminator)
	if i < 0 {
		return "", false
	}
	return rest[:i+len(addressTerminator)], true
}

// isLineAddress reports whether addr is one or more ASCII digits followed
// directly by the terminator.
func isLineAddress(addr string) bool {
	digits, ok := strings.CutSuffix(addr, addressTerminator)
	if !ok || digits == "" {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	return true
}

// patternAddress strips the search delimiters and the terminator from a
// /pattern/;" or ?pattern?;" address.
func patternAddress(addr string) string {
	body := strings.TrimSuffix(addr, addressTerminator)

	delim := "/"
	if strings.HasPrefix(body, "/") || strings.HasPrefix(body, "?") {
		delim = body[:1]
		body = body[1:]
	}
	return strings.TrimSuffix(body, delim)
}

// escapePattern backslash-escapes each of ~ . * [ ] \ in s. Other bytes,
// invalid UTF-8 included, are copied unchanged.
func escapePattern(s string) string {
	if !strings.ContainsAny(s, patternSpecials) {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(patternSpecials, s[i]) >= 0 {
			sb.WriteByte('\\')
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

// remainder returns what follows addr in rest, skipping the one separator
// character after the terminator.
func remainder(rest, addr string) string {
	after := rest[len(addr):]
	if after == "" {
		return ""
	}
	_, size := utf8.DecodeRuneInString(after)
	return after[size:]
}

// splitExtensions splits the extension fields into kind and scope.
func splitExtensions(ext string) (kind, scope string) {
	if ext == "" {
		return "", ""
	}
	parts := strings.Split(ext, "\t")
	kind = parts[0]
	scope = strings.Join(parts[1:], " ")
	return kind, scope
}
