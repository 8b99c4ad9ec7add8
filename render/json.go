package render

import (
	"encoding/json"
	"io"

	"github.com/revelaction/fgcrel/relation"
)

// JSONRenderer writes converted instances as indented JSON to a writer.
type JSONRenderer struct {
	W io.Writer
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

// Render serializes the instance in the output schema.
func (r *JSONRenderer) Render(inst relation.Instance) error {
	enc := json.NewEncoder(r.W)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(inst)
}
