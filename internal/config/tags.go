package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Defaults for tag-file discovery.
const (
	DefaultTagsOption = "./tags;,tags"
	DefaultTagNames   = "tags,TAGS"
	DefaultEncoding   = "utf-8"
)

// TagsConfig controls where tags files are looked up and how they are read.
type TagsConfig struct {
	// Tags holds entries in vim 'tags' option syntax. An entry ending in
	// ";" (optionally followed by a stop directory) is searched upward.
	Tags []string

	// IncludePaths are roots walked for tags files of included code.
	IncludePaths []string

	// TagNames are the file names recognised during the include walk.
	TagNames []string

	// Encoding names the text encoding of the tags files.
	Encoding string
}

// LoadTagsConfigFromEnv loads discovery settings from environment variables:
//   - TAGNAV_TAGS: comma separated tags option (default "./tags;,tags")
//   - TAGNAV_INCLUDE_PATH: include roots separated by the OS list separator
//   - TAGNAV_TAG_NAMES: comma separated tag file names (default "tags,TAGS")
//   - TAGNAV_ENCODING: tags file encoding (default "utf-8")
func LoadTagsConfigFromEnv() TagsConfig {
	cfg := TagsConfig{
		Tags:     SplitOption(DefaultTagsOption),
		TagNames: SplitOption(DefaultTagNames),
		Encoding: DefaultEncoding,
	}

	if tags := os.Getenv("TAGNAV_TAGS"); tags != "" {
		cfg.Tags = SplitOption(tags)
	}
	if include := os.Getenv("TAGNAV_INCLUDE_PATH"); include != "" {
		cfg.IncludePaths = SplitPathList(include)
	}
	if names := os.Getenv("TAGNAV_TAG_NAMES"); names != "" {
		cfg.TagNames = SplitOption(names)
	}
	if enc := os.Getenv("TAGNAV_ENCODING"); enc != "" {
		cfg.Encoding = enc
	}

	return cfg
}

// SplitOption splits a comma separated option value. A backslash escapes a
// comma that belongs to a file name.
func SplitOption(value string) []string {
	var parts []string
	var cur strings.Builder
	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			parts = append(parts, s)
		}
		cur.Reset()
	}

	for i := 0; i < len(value); i++ {
		switch {
		case value[i] == '\\' && i+1 < len(value) && value[i+1] == ',':
			cur.WriteByte(',')
			i++
		case value[i] == ',':
			flush()
		default:
			cur.WriteByte(value[i])
		}
	}
	flush()
	return parts
}

// SplitPathList splits an OS path list, dropping empty entries.
func SplitPathList(value string) []string {
	var paths []string
	for _, p := range filepath.SplitList(value) {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}
