package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tagnav/internal/tags"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TAGNAV_TAGS", "TAGNAV_INCLUDE_PATH", "TAGNAV_TAG_NAMES", "TAGNAV_ENCODING",
		"TAGNAV_DB_TYPE", "TAGNAV_DB_DSN", "TAGNAV_DB_PATH", "TAGNAV_LOG_LEVEL", "TAGNAV_LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// project lays out a workdir with a tags file and an include root.
func project(t *testing.T) (workdir, include string) {
	t.Helper()
	clearEnv(t)
	dir := t.TempDir()
	workdir = filepath.Join(dir, "proj")
	include = filepath.Join(dir, "inc")

	require.NoError(t, os.MkdirAll(filepath.Join(include, "lib"), 0o755))
	require.NoError(t, os.MkdirAll(workdir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(workdir, "tags"), []byte(""+
		"!_TAG_FILE_SORTED\t1\t/0=unsorted/\n"+
		"main\tmain.c\t12;\"\tf\n"+
		"count\tmain.c\t/^static int count;$/;\"\tv\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(include, "lib", "tags"), []byte("printf\tstdio.h\t300;\"\tp\n"), 0o644))
	return workdir, include
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "tagnav "+version+"\n", out)
}

func TestList(t *testing.T) {
	workdir, include := project(t)
	file := filepath.Join(workdir, "main.c")

	out, err := run(t, "", "list", "--workdir", workdir, "--tags", "tags")
	require.NoError(t, err)
	assert.Equal(t, "count [v] "+file+" ^static int count;$\n"+"main [f] "+file+" 12\n", out)

	out, err = run(t, "", "list", "include", "--workdir", workdir, "--include-path", include)
	require.NoError(t, err)
	assert.Equal(t, "printf [p] "+filepath.Join(include, "lib", "stdio.h")+" 300\n", out)
}

func TestListRejectsUnknownArgument(t *testing.T) {
	workdir, _ := project(t)

	_, err := run(t, "", "list", "foo", "--workdir", workdir, "--tags", "tags")
	assert.ErrorContains(t, err, `invalid argument "foo"`)

	_, err = run(t, "", "list", "include", "include", "--workdir", workdir)
	assert.Error(t, err)
}

func TestListJSON(t *testing.T) {
	workdir, _ := project(t)

	out, err := run(t, "", "list", "--json", "--workdir", workdir, "--tags", "tags")
	require.NoError(t, err)

	var got []tags.Candidate
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "count", got[0].Word)
	assert.Equal(t, "^static int count;$", got[0].Pattern)
	assert.Equal(t, "12", got[1].Line)
}

func TestListNoTags(t *testing.T) {
	clearEnv(t)
	out, err := run(t, "", "list", "--json", "--workdir", t.TempDir(), "--tags", "tags")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestFiles(t *testing.T) {
	workdir, include := project(t)

	out, err := run(t, "", "files", "--workdir", workdir, "--tags", "tags")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(workdir, "tags")+"\n", out)

	out, err = run(t, "", "files", "--include", "--workdir", workdir, "--include-path", include)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(include, "lib", "tags")+"\n", out)
}

func TestExportAndLookup(t *testing.T) {
	workdir, _ := project(t)

	_, err := run(t, "", "lookup", "main", "--workdir", workdir, "--tags", "tags")
	assert.ErrorContains(t, err, "tagnav export")

	out, err := run(t, "", "export", "--workdir", workdir, "--tags", "tags", "--db", "snap.db")
	require.NoError(t, err)
	assert.Contains(t, out, "exported 2 tags from 1 tags files")
	assert.FileExists(t, filepath.Join(workdir, "snap.db"))

	out, err = run(t, "", "lookup", "main", "--workdir", workdir, "--db", "snap.db")
	require.NoError(t, err)
	assert.Equal(t, "main [f] "+filepath.Join(workdir, "main.c")+" 12\n", out)

	_, err = run(t, "", "lookup", "main", "--kind", "v", "--workdir", workdir, "--db", "snap.db")
	assert.ErrorContains(t, err, "not found")
}

func TestServe(t *testing.T) {
	workdir, _ := project(t)

	out, err := run(t,
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"list_tags","arguments":{"name":"main"}}}`+"\n",
		"serve", "--workdir", workdir, "--tags", "tags")
	require.NoError(t, err)

	var resp struct {
		Result struct {
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Result.Content, 1)
	assert.Contains(t, resp.Result.Content[0].Text, `"word":"main"`)
}

func TestBadLogLevel(t *testing.T) {
	clearEnv(t)
	_, err := run(t, "", "list", "--log-level", "loud")
	assert.ErrorContains(t, err, "unknown log level")
}
