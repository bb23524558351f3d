package template_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/snip/template"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestNames(t *testing.T) {
	user := t.TempDir()
	app := t.TempDir()

	writeFile(t, filepath.Join(user, "ping"), "ping <host>\n")
	writeFile(t, filepath.Join(user, "net", "scan"), "nmap <host>\n")
	writeFile(t, filepath.Join(app, "ping"), "ping -c 1 <host>\n")
	writeFile(t, filepath.Join(app, "curl"), "curl <url>\n")

	s := template.NewStore(user, app)

	assert.Equal(t, []string{"curl", "net/scan", "ping"}, s.Names())
}

func TestNamesLocalSnippetFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "build.snippet"), "make <target>\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "not a template\n")

	t.Chdir(dir)

	s := template.NewStore()

	assert.Equal(t, []string{"build.snippet"}, s.Names())
}

func TestLoadSearchOrder(t *testing.T) {
	user := t.TempDir()
	app := t.TempDir()

	writeFile(t, filepath.Join(user, "ping"), "user version\n")
	writeFile(t, filepath.Join(app, "ping"), "app version\n")
	writeFile(t, filepath.Join(app, "curl"), "curl <url>\n\n")

	s := template.NewStore(user, app)

	got, err := s.Load("ping")
	require.NoError(t, err)
	assert.Equal(t, "user version", got, "user directory wins")

	got, err = s.Load("curl")
	require.NoError(t, err)
	assert.Equal(t, "curl <url>", got, "trailing newlines are stripped")
}

func TestLoadNotFound(t *testing.T) {
	s := template.NewStore(t.TempDir())

	_, err := s.Load("missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, template.ErrNotFound), "err = %v", err)
}

func TestLoadLocalSnippet(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "build.snippet"), "make <target>\n")

	t.Chdir(dir)

	s := template.NewStore(t.TempDir())

	got, err := s.Load("build.snippet")
	require.NoError(t, err)
	assert.Equal(t, "make <target>", got)

	// A .snippet name never falls back to the search directories.
	_, err = s.Load("other.snippet")
	assert.Error(t, err)
}

func TestEnsureUserNew(t *testing.T) {
	user := t.TempDir()
	s := template.NewStore(user)

	path, err := s.EnsureUser("net/scan")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(user, "net", "scan"), path)

	// Parent directory exists, file does not yet.
	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEnsureUserCopiesPackaged(t *testing.T) {
	user := t.TempDir()
	app := t.TempDir()

	writeFile(t, filepath.Join(app, "ping"), "ping -c 1 <host>\n")

	s := template.NewStore(user, app)

	path, err := s.EnsureUser("ping")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(user, "ping"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ping -c 1 <host>\n", string(data))
}

func TestEnsureUserExistingUntouched(t *testing.T) {
	user := t.TempDir()
	app := t.TempDir()

	writeFile(t, filepath.Join(user, "ping"), "mine\n")
	writeFile(t, filepath.Join(app, "ping"), "packaged\n")

	s := template.NewStore(user, app)

	path, err := s.EnsureUser("ping")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "mine\n", string(data))
}
