package template

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ardnew/snip/lang"
)

// Predefined errors (sentinel values).
var (
	ErrNotFound = lang.NewError("template not found")
	ErrStore    = lang.NewError("template store error")
)

// localExt marks files in the working directory that are visible as
// templates without being stored in a search directory.
const localExt = ".snippet"

// Store finds and loads named templates from an ordered list of
// directories.
type Store struct {
	paths []string
}

// NewStore creates a store searching the given directories in order.
// The first directory is the user's writable template directory.
func NewStore(paths ...string) *Store {
	return &Store{paths: paths}
}

// Names returns all template names, sorted and without duplicates.
func (s *Store) Names() []string {
	seen := make(map[string]bool)

	for _, dir := range s.paths {
		root := os.DirFS(dir)

		_ = fs.WalkDir(root, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return fs.SkipDir
			}

			if !d.IsDir() {
				seen[path] = true
			}

			return nil
		})
	}

	// Files like scan.snippet next to the caller count as templates too.
	if entries, err := os.ReadDir("."); err == nil {
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), localExt) {
				seen[e.Name()] = true
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Path resolves a template name to an existing file.
func (s *Store) Path(name string) (string, bool) {
	if name == "" {
		return "", false
	}

	if strings.HasSuffix(name, localExt) {
		local := filepath.Join(".", filepath.Clean(name))
		if isFile(local) {
			return local, true
		}

		return "", false
	}

	for _, dir := range s.paths {
		path := filepath.Join(dir, name)
		if isFile(path) {
			return path, true
		}
	}

	return "", false
}

// Load returns the contents of the named template.
func (s *Store) Load(name string) (string, error) {
	path, ok := s.Path(name)
	if !ok {
		return "", ErrNotFound.With(slog.String("name", name))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", ErrStore.Wrap(err).With(slog.String("path", path))
	}

	return strings.TrimRight(string(data), "\n"), nil
}

// EnsureUser returns a writable path for the named template, creating
// parent directories as needed. A template that exists only in a
// lower-priority directory is first copied into the user directory.
func (s *Store) EnsureUser(name string) (string, error) {
	if len(s.paths) == 0 {
		return "", ErrStore.With(slog.String("error", "no template directory"))
	}

	userPath := filepath.Join(s.paths[0], name)
	if isFile(userPath) {
		return userPath, nil
	}

	err := os.MkdirAll(filepath.Dir(userPath), 0o755)
	if err != nil {
		return "", ErrStore.Wrap(err).With(slog.String("path", userPath))
	}

	for _, dir := range s.paths[1:] {
		path := filepath.Join(dir, name)
		if !isFile(path) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return "", ErrStore.Wrap(err).With(slog.String("path", path))
		}

		err = os.WriteFile(userPath, data, 0o644)
		if err != nil {
			return "", ErrStore.Wrap(err).With(slog.String("path", userPath))
		}

		break
	}

	return userPath, nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.Mode().IsRegular()
}
