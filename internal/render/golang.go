package render

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"github.com/yamlembed/yamlembed/internal/payload"
)

var goConstTemplate = template.Must(template.New("go").Parse(`
// Code generated by yamlembed from {{.Source}}. DO NOT EDIT.

package {{.Package}}

const {{.Identifier}} = {{.Literal}}
`[1:]))

var goEmbedTemplate = template.Must(template.New("go-embed").Parse(`
// Code generated by yamlembed from {{.Source}}. DO NOT EDIT.

package {{.Package}}

import _ "embed"

//go:embed {{.Path}}
var {{.Identifier}} string
`[1:]))

// GoRenderer emits a Go file declaring the payload as a string constant.
// The literal is built with strconv.Quote from the raw lines, so backslashes,
// tabs and invalid UTF-8 are always escaped whatever the payload options.
type GoRenderer struct{}

func (r *GoRenderer) Render(w io.Writer, p payload.Payload, t Target) error {
	if err := checkIdentifier(t.Identifier); err != nil {
		return err
	}
	pkg, err := goPackage(t)
	if err != nil {
		return err
	}
	literal := strconv.Quote(strings.Join(payload.SplitLines(p.Raw), "\n"))
	return goConstTemplate.Execute(w, struct {
		Source, Package, Identifier, Literal string
	}{filepath.ToSlash(t.Source), pkg, t.Identifier, literal})
}

// GoEmbedRenderer emits a Go file that pulls the input in with a go:embed
// directive instead of copying its content. The payload body is unused.
type GoEmbedRenderer struct{}

func (r *GoEmbedRenderer) Render(w io.Writer, _ payload.Payload, t Target) error {
	if err := checkIdentifier(t.Identifier); err != nil {
		return err
	}
	pkg, err := goPackage(t)
	if err != nil {
		return err
	}
	rel, err := embedPath(t.Input, t.Output)
	if err != nil {
		return err
	}
	return goEmbedTemplate.Execute(w, struct {
		Source, Package, Identifier, Path string
	}{filepath.ToSlash(t.Source), pkg, t.Identifier, embedPattern(rel)})
}

// embedPath returns input relative to the output's directory, slash separated.
func embedPath(input, output string) (string, error) {
	inAbs, err := filepath.Abs(input)
	if err != nil {
		return "", fmt.Errorf("render: resolve input: %w", err)
	}
	outAbs, err := filepath.Abs(output)
	if err != nil {
		return "", fmt.Errorf("render: resolve output: %w", err)
	}
	rel, err := filepath.Rel(filepath.Dir(outAbs), inAbs)
	if err != nil {
		return "", fmt.Errorf("render: %w: %v", ErrNotEmbeddable, err)
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("render: %w: %s is outside %s", ErrNotEmbeddable, input, filepath.Dir(output))
	}
	return rel, nil
}

// embedPattern quotes rel when a bare go:embed pattern would split or
// misread it.
func embedPattern(rel string) string {
	if strings.ContainsAny(rel, " \t\"`") {
		return strconv.Quote(rel)
	}
	return rel
}
