// Package ignore answers whether generated files are covered by .gitignore
// and appends them when they are not.
package ignore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// FileName is the ignore file read and written in the project root.
const FileName = ".gitignore"

// Matcher wraps a gitignore pattern matcher.
type Matcher struct {
	gi *gitignore.GitIgnore
}

// Load reads .gitignore from root. If no .gitignore file is found, the
// matcher ignores nothing.
func Load(root string) *Matcher {
	path := filepath.Join(root, FileName)
	if _, err := os.Stat(path); err != nil {
		return &Matcher{}
	}
	gi, err := gitignore.CompileIgnoreFile(path)
	if err != nil {
		return &Matcher{}
	}
	return &Matcher{gi: gi}
}

// Match returns true if the given root-relative path is ignored.
func (m *Matcher) Match(relPath string) bool {
	if m.gi == nil {
		return false
	}
	return m.gi.MatchesPath(filepath.ToSlash(relPath))
}

// Ensure appends relPath to root's .gitignore unless it is already ignored.
// It reports whether the file was changed.
func Ensure(root, relPath string) (bool, error) {
	rel := filepath.ToSlash(filepath.Clean(relPath))
	if rel == "." || strings.HasPrefix(rel, "../") || filepath.IsAbs(relPath) {
		return false, fmt.Errorf("ignore: %s is not inside %s", relPath, root)
	}
	if Load(root).Match(rel) {
		return false, nil
	}

	path := filepath.Join(root, FileName)
	content, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("ignore: read %s: %w", path, err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return false, fmt.Errorf("ignore: open %s: %w", path, err)
	}
	defer f.Close()

	var b strings.Builder
	if len(content) > 0 && !strings.HasSuffix(string(content), "\n") {
		b.WriteString("\n")
	}
	b.WriteString("/" + rel + "\n")
	if _, err := f.WriteString(b.String()); err != nil {
		return false, fmt.Errorf("ignore: write %s: %w", path, err)
	}
	return true, nil
}
