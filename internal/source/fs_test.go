package source

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"tagnav/internal/config"
)

func TestConfiguredTagFilesPlainEntries(t *testing.T) {
	dir := t.TempDir()
	h := NewFSHost(config.TagsConfig{Tags: []string{"tags", "./tags", "/abs/tags", "sub/TAGS"}}, dir, nil)

	assert.Equal(t, []string{
		filepath.Join(dir, "tags"),
		"/abs/tags",
		filepath.Join(dir, "sub", "TAGS"),
	}, h.ConfiguredTagFiles())
}

func TestConfiguredTagFilesUpwardSearch(t *testing.T) {
	root := t.TempDir()
	top := touch(t, filepath.Join(root, "tags"), "")
	mid := touch(t, filepath.Join(root, "a", "tags"), "")
	work := filepath.Join(root, "a", "b", "c")
	touch(t, filepath.Join(work, "README"), "")

	t.Run("nearest first", func(t *testing.T) {
		h := NewFSHost(config.TagsConfig{Tags: []string{"./tags;"}}, work, nil)
		got := h.ConfiguredTagFiles()
		assert.GreaterOrEqual(t, len(got), 2)
		assert.Equal(t, []string{mid, top}, got[:2])
	})

	t.Run("stop directory", func(t *testing.T) {
		h := NewFSHost(config.TagsConfig{Tags: []string{"tags;" + filepath.Join(root, "a")}}, work, nil)
		assert.Equal(t, []string{mid}, h.ConfiguredTagFiles())
	})

	t.Run("duplicates removed", func(t *testing.T) {
		h := NewFSHost(config.TagsConfig{Tags: []string{"./tags;" + root, "../../tags"}}, work, nil)
		assert.Equal(t, []string{mid, top}, h.ConfiguredTagFiles())
	})
}

func TestIncludeTagFiles(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, ".gitignore"), "build/\ntags\n")
	libTags := touch(t, filepath.Join(root, "lib", "tags"), "")
	vendorTags := touch(t, filepath.Join(root, "vendor", "x", "TAGS"), "")
	touch(t, filepath.Join(root, "build", "tags"), "")
	touch(t, filepath.Join(root, ".git", "tags"), "")
	touch(t, filepath.Join(root, "lib", "tags.bak"), "")

	h := NewFSHost(config.TagsConfig{
		IncludePaths: []string{root, filepath.Join(root, "missing")},
		TagNames:     []string{"tags", "TAGS"},
	}, root, nil)

	assert.ElementsMatch(t, []string{libTags, vendorTags}, h.IncludeTagFiles())
}

func TestFSHostSelectInclude(t *testing.T) {
	root := t.TempDir()
	projTags := touch(t, filepath.Join(root, "proj", "tags"), "")
	incTags := touch(t, filepath.Join(root, "inc", "tags"), "")

	h := NewFSHost(config.TagsConfig{
		Tags:         []string{"tags"},
		IncludePaths: []string{filepath.Join(root, "inc")},
		TagNames:     []string{"tags"},
	}, filepath.Join(root, "proj"), nil)

	assert.Equal(t, []string{projTags}, Select(h, nil))
	assert.Equal(t, []string{incTags}, Select(h, []string{IncludeArg}))
}
