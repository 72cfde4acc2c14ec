package render

import (
	"fmt"
	"io"
	"sort"

	"vplanctl/pkg/vplan"
)

// Options carries the display settings that are not part of the plan.
type Options struct {
	ShowDate bool
}

// Renderer writes a plan, or an error in place of one, in a single format.
type Renderer interface {
	Render(w io.Writer, plan *vplan.Plan, opts Options) error
	RenderError(w io.Writer, err error) error
}

// Registry maps format names to renderers. It starts empty; the application
// registers the formats it wants to offer.
type Registry struct {
	renderers map[string]Renderer
}

func NewRegistry() *Registry {
	return &Registry{renderers: make(map[string]Renderer)}
}

// Register adds a renderer under name. Names must be unique.
func (r *Registry) Register(name string, rd Renderer) error {
	if name == "" || rd == nil {
		return fmt.Errorf("renderer name and implementation are required")
	}
	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("renderer %q already registered", name)
	}
	r.renderers[name] = rd
	return nil
}

// Get looks up a renderer by name.
func (r *Registry) Get(name string) (Renderer, error) {
	rd, ok := r.renderers[name]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (available: %v)", name, r.Names())
	}
	return rd, nil
}

// Names returns the registered format names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// cellText returns the cell's text, or fallback when it is empty.
func cellText(c vplan.Cell, fallback string) string {
	if c.Text == "" {
		return fallback
	}
	return c.Text
}

// headerDate is the date shown above the plan, empty when hidden.
func headerDate(plan *vplan.Plan, opts Options) string {
	if !opts.ShowDate {
		return ""
	}
	return plan.Header.Date
}

func notFoundMessage(class string) string {
	return fmt.Sprintf("No substitution for class %s found.", class)
}
