package render

import "github.com/charmbracelet/lipgloss"

// Standard registers the table, html and json formats on r.
func Standard(r *Registry, accent string) error {
	if err := r.Register("table", Table{Accent: lipgloss.Color(accent)}); err != nil {
		return err
	}
	if err := r.Register("html", HTML{}); err != nil {
		return err
	}
	return r.Register("json", JSON{})
}
