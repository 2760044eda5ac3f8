// Package source selects the tags files a query scans. The host
// environment (editor, CLI, MCP client) is reached only through the Host
// interface, so the tags core never depends on a particular runtime.
package source

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"tagnav/internal/tags"
)

// IncludeArg is the query argument that asks for include tag files.
const IncludeArg = "include"

// Host supplies tag-file paths and answers existence checks.
type Host interface {
	// ConfiguredTagFiles returns the standard tag-file list.
	ConfiguredTagFiles() []string
	// PathExists reports whether path currently exists.
	PathExists(path string) bool
}

// IncludeProvider is an optional Host capability listing the tags files of
// included or imported code.
type IncludeProvider interface {
	IncludeTagFiles() []string
}

// Select returns the tag files for a query. When args contains IncludeArg
// and h implements IncludeProvider the include list is used, otherwise the
// configured list. Paths are made absolute and missing files dropped.
func Select(h Host, args []string) []string {
	var files []string
	if ip, ok := h.(IncludeProvider); ok && slices.Contains(args, IncludeArg) {
		files = ip.IncludeTagFiles()
	} else {
		files = h.ConfiguredTagFiles()
	}

	selected := make([]string, 0, len(files))
	for _, f := range files {
		path := ExpandPath(f)
		if h.PathExists(path) {
			selected = append(selected, path)
		}
	}
	return selected
}

// Query selects tag files from h and collects their candidates.
func Query(h Host, c *tags.Collector, encoding string, args []string) []tags.Candidate {
	return c.Collect(Select(h, args), encoding)
}

// ExpandPath expands a leading ~ and returns a clean absolute path.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
