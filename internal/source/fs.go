package source

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"tagnav/internal/config"
	"tagnav/internal/logging"
)

// FSHost is a Host backed by the local filesystem and a TagsConfig.
// It holds no mutable state and can serve concurrent queries.
type FSHost struct {
	cfg     config.TagsConfig
	workdir string
	logger  *slog.Logger
}

// Verify interface compliance at compile time.
var (
	_ Host            = (*FSHost)(nil)
	_ IncludeProvider = (*FSHost)(nil)
)

// NewFSHost creates a host resolving relative tags entries against workdir.
func NewFSHost(cfg config.TagsConfig, workdir string, logger *slog.Logger) *FSHost {
	if logger == nil {
		logger = logging.Nop()
	}
	return &FSHost{cfg: cfg, workdir: ExpandPath(workdir), logger: logger}
}

// PathExists reports whether path exists.
func (h *FSHost) PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ConfiguredTagFiles resolves the tags option. Plain entries are relative
// to the working directory; "name;" and "name;stop" entries are searched
// upward from it, nearest first, stopping at stop when given.
// Duplicates are removed.
func (h *FSHost) ConfiguredTagFiles() []string {
	var files []string
	for _, entry := range h.cfg.Tags {
		name, stop, upward := strings.Cut(entry, ";")
		if upward {
			files = append(files, h.searchUpward(name, stop)...)
			continue
		}
		files = append(files, h.resolve(name))
	}
	return dedupe(files)
}

func (h *FSHost) resolve(name string) string {
	if strings.HasPrefix(name, "~") {
		return ExpandPath(name)
	}
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(h.workdir, name)
}

func (h *FSHost) searchUpward(name, stop string) []string {
	dir := h.workdir
	rel := filepath.Clean(name)
	if filepath.IsAbs(rel) || strings.HasPrefix(rel, "~") {
		full := h.resolve(rel)
		dir, rel = filepath.Dir(full), filepath.Base(full)
	}
	if stop != "" {
		stop = h.resolve(stop)
	}

	var found []string
	for {
		candidate := filepath.Join(dir, rel)
		if h.PathExists(candidate) {
			found = append(found, candidate)
		}
		if dir == stop {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return found
}

// IncludeTagFiles walks every include root for files named like one of
// the configured tag names. .git and directories excluded by the root's
// .gitignore are not entered; the tags files themselves are often ignored
// and are still returned.
func (h *FSHost) IncludeTagFiles() []string {
	var files []string
	for _, root := range h.cfg.IncludePaths {
		root = ExpandPath(root)
		gi := loadGitignore(root)

		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil // Skip unreadable entries
			}
			if d.IsDir() {
				if path == root {
					return nil
				}
				if d.Name() == ".git" {
					return filepath.SkipDir
				}
				rel, relErr := filepath.Rel(root, path)
				if relErr == nil && gi != nil && gi.MatchesPath(filepath.ToSlash(rel)+"/") {
					return filepath.SkipDir
				}
				return nil
			}
			if slices.Contains(h.cfg.TagNames, d.Name()) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			h.logger.Warn("walking include path", "root", root, "error", err)
		}
	}
	return dedupe(files)
}

// loadGitignore compiles root/.gitignore, or returns nil when there is none.
func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

func dedupe(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}
