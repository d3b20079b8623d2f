// Package render turns a payload into source text for a target language.
package render

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/yamlembed/yamlembed/internal/payload"
)

// DefaultLanguage is used when no language is configured.
const DefaultLanguage = "c"

var (
	// ErrInvalidIdentifier is returned when a constant or package name is not
	// usable in the target language.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrNotEmbeddable is returned by the go-embed renderer when the input
	// file is not inside the output file's directory tree.
	ErrNotEmbeddable = errors.New("input not embeddable from output directory")
)

// Target describes the declaration being generated.
type Target struct {
	Identifier string // constant or variable name
	Package    string // Go package clause; derived from Output when empty
	Source     string // input path as the user wrote it, for banners
	Input      string // resolved input path
	Output     string // resolved output path
}

// Renderer writes a declaration holding the payload.
type Renderer interface {
	Render(w io.Writer, p payload.Payload, t Target) error
}

// registry maps language names to Renderer implementations.
var registry = map[string]Renderer{
	"c":        &CRenderer{},
	"go":       &GoRenderer{},
	"go-embed": &GoEmbedRenderer{},
}

// Get returns the Renderer registered under name, and whether it was found.
func Get(name string) (Renderer, bool) {
	r, ok := registry[name]
	return r, ok
}

// Languages returns the supported language names in sorted order.
func Languages() []string {
	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdentifier reports whether s is an ASCII identifier accepted by every
// supported language.
func ValidIdentifier(s string) bool {
	return identRe.MatchString(s)
}

func checkIdentifier(s string) error {
	if !ValidIdentifier(s) {
		return fmt.Errorf("render: %w: %q", ErrInvalidIdentifier, s)
	}
	return nil
}

// goPackage returns t.Package, falling back to the output directory name.
func goPackage(t Target) (string, error) {
	pkg := t.Package
	if pkg == "" {
		pkg = filepath.Base(filepath.Dir(t.Output))
	}
	if !ValidIdentifier(pkg) {
		return "", fmt.Errorf("render: %w: package %q (set package explicitly)", ErrInvalidIdentifier, pkg)
	}
	return pkg, nil
}
