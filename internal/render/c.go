package render

import (
	"fmt"
	"io"

	"github.com/yamlembed/yamlembed/internal/payload"
)

// CRenderer emits a single C declaration:
//
//	const char* LOTS_YAML = "...";
type CRenderer struct{}

func (r *CRenderer) Render(w io.Writer, p payload.Payload, t Target) error {
	if err := checkIdentifier(t.Identifier); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "const char* %s = \"%s\";\n", t.Identifier, p.Body)
	return err
}
