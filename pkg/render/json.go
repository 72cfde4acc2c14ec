package render

import (
	"encoding/json"
	"io"

	"vplanctl/pkg/vplan"
)

// JSON writes the plan as an indented JSON document.
type JSON struct{}

func (JSON) Render(w io.Writer, plan *vplan.Plan, opts Options) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		*vplan.Plan
		ShowDate bool `json:"show_date"`
	}{plan, opts.ShowDate})
}

func (JSON) RenderError(w io.Writer, err error) error {
	return json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
