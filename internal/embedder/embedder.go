// Package embedder reads a text file and writes a source file that carries
// its content as a string constant.
package embedder

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/yamlembed/yamlembed/internal/payload"
	"github.com/yamlembed/yamlembed/internal/render"
)

var (
	// ErrUnknownLanguage is returned when no renderer is registered for
	// Options.Language.
	ErrUnknownLanguage = errors.New("unknown language")

	// ErrStale is returned by Check when the output is missing or differs
	// from what Embed would write.
	ErrStale = errors.New("output is stale")
)

// Options describes one embed.
type Options struct {
	Input             string // path read
	Output            string // path written
	Source            string // input path as shown to users; Input when empty
	Language          string // renderer name; render.DefaultLanguage when empty
	Identifier        string
	Package           string
	EscapeBackslashes bool
}

// Result summarizes a finished Embed or Check.
type Result struct {
	Input   string
	Output  string
	Lines   int
	Bytes   int  // size of the generated file
	Changed bool // generated bytes differ from the previous output
}

// Embedder runs the read, transform, render, write pipeline.
type Embedder struct {
	log *zap.Logger
}

// New returns an Embedder. A nil logger disables logging.
func New(log *zap.Logger) *Embedder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Embedder{log: log}
}

// Generate reads the input and returns the rendered output without touching
// the filesystem beyond the read.
func (e *Embedder) Generate(opts Options) ([]byte, payload.Payload, error) {
	lang := opts.Language
	if lang == "" {
		lang = render.DefaultLanguage
	}
	r, ok := render.Get(lang)
	if !ok {
		return nil, payload.Payload{}, fmt.Errorf("embedder: %w %q", ErrUnknownLanguage, lang)
	}

	raw, err := os.ReadFile(opts.Input)
	if err != nil {
		return nil, payload.Payload{}, fmt.Errorf("embedder: read input: %w", err)
	}

	p := payload.New(string(raw), payload.Options{EscapeBackslashes: opts.EscapeBackslashes})

	source := opts.Source
	if source == "" {
		source = opts.Input
	}

	var buf bytes.Buffer
	err = r.Render(&buf, p, render.Target{
		Identifier: opts.Identifier,
		Package:    opts.Package,
		Source:     source,
		Input:      opts.Input,
		Output:     opts.Output,
	})
	if err != nil {
		return nil, p, fmt.Errorf("embedder: render %s: %w", lang, err)
	}

	e.log.Debug("Rendered payload",
		zap.String("input", opts.Input),
		zap.String("language", lang),
		zap.Int("lines", len(p.Lines)),
		zap.Int("bytes", buf.Len()))

	return buf.Bytes(), p, nil
}

// Embed generates the output and writes it over opts.Output in one atomic
// replace. On failure the previous output, if any, is left as it was.
func (e *Embedder) Embed(opts Options) (Result, error) {
	out, p, err := e.Generate(opts)
	if err != nil {
		return Result{}, err
	}

	prev, readErr := os.ReadFile(opts.Output)
	changed := readErr != nil || !bytes.Equal(prev, out)

	if err := writeFileAtomic(opts.Output, out, 0o644); err != nil {
		return Result{}, fmt.Errorf("embedder: write output: %w", err)
	}

	e.log.Debug("Wrote output",
		zap.String("output", opts.Output),
		zap.Bool("changed", changed))

	return Result{
		Input:   opts.Input,
		Output:  opts.Output,
		Lines:   len(p.Lines),
		Bytes:   len(out),
		Changed: changed,
	}, nil
}

// Check reports whether opts.Output already holds exactly what Embed would
// write. It returns an error wrapping ErrStale when it does not.
func (e *Embedder) Check(opts Options) (Result, error) {
	out, p, err := e.Generate(opts)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Input:  opts.Input,
		Output: opts.Output,
		Lines:  len(p.Lines),
		Bytes:  len(out),
	}

	current, err := os.ReadFile(opts.Output)
	if err != nil {
		if os.IsNotExist(err) {
			res.Changed = true
			return res, fmt.Errorf("embedder: %w: %s does not exist", ErrStale, opts.Output)
		}
		return res, fmt.Errorf("embedder: read output: %w", err)
	}
	if !bytes.Equal(current, out) {
		res.Changed = true
		e.log.Debug("Output differs",
			zap.String("output", opts.Output),
			zap.Int("want_bytes", len(out)),
			zap.Int("have_bytes", len(current)))
		return res, fmt.Errorf("embedder: %w: %s", ErrStale, opts.Output)
	}
	return res, nil
}
