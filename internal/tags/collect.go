package tags

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"tagnav/internal/logging"
)

// Collector reads tags files and returns name-sorted candidates.
// It keeps no state between calls.
type Collector struct {
	parser *Parser
	logger *slog.Logger
}

// NewCollector creates a collector. A nil parser uses os.Stat for file
// resolution; a nil logger discards output.
func NewCollector(parser *Parser, logger *slog.Logger) *Collector {
	if parser == nil {
		parser = defaultParser
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Collector{parser: parser, logger: logger}
}

// Collect reads every tags file in order and returns the candidates
// stable-sorted by name. Unreadable files and unparseable lines are skipped;
// an empty tagFiles list yields an empty list.
func (c *Collector) Collect(tagFiles []string, encodingName string) []Candidate {
	enc, err := LookupEncoding(encodingName)
	if err != nil {
		c.logger.Warn("falling back to utf-8", "encoding", encodingName, "error", err)
		enc, _ = LookupEncoding(DefaultEncoding)
	}

	candidates := []Candidate{}
	for _, path := range tagFiles {
		found, err := c.collectFile(path, enc)
		if err != nil {
			c.logger.Warn("reading tags file", "path", path, "error", err)
		}
		candidates = append(candidates, found...)
	}

	SortCandidates(candidates)
	c.logger.Debug("collected candidates", "files", len(tagFiles), "candidates", len(candidates))
	return candidates
}

// collectFile returns the candidates read so far even when reading fails
// part way through.
func (c *Collector) collectFile(path string, enc encoding.Encoding) ([]Candidate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening tags file: %w", err)
	}
	defer f.Close()

	var candidates []Candidate
	skipped := 0
	err = eachLine(transform.NewReader(f, enc.NewDecoder()), func(line string) {
		if line == "" || strings.HasPrefix(line, "!") {
			return
		}
		rec, err := c.parser.Parse(line, path)
		if err != nil {
			skipped++
			return
		}
		candidates = append(candidates, NewCandidate(rec, path))
	})
	if skipped > 0 {
		c.logger.Debug("skipped tag lines", "path", path, "lines", skipped)
	}
	return candidates, err
}

// eachLine calls fn for every newline-delimited line of r with trailing
// whitespace removed. Lines of any length are supported.
func eachLine(r io.Reader, fn func(line string)) error {
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			fn(strings.TrimRightFunc(line, unicode.IsSpace))
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading line: %w", err)
		}
	}
}

// SortCandidates stable-sorts candidates by Word in byte order.
func SortCandidates(candidates []Candidate) {
	slices.SortStableFunc(candidates, func(a, b Candidate) int {
		return strings.Compare(a.Word, b.Word)
	})
}
