package render

import (
	"html/template"
	"io"

	"vplanctl/pkg/vplan"
)

var cardTemplate = template.Must(template.New("card").Parse(`<style>
  .changed-item { color: red !important; }
  ha-card.no-header { padding-top: 0px !important; }
  table { width: 100%; border-collapse: collapse; }
  th, td { padding: 8px; text-align: left; border-bottom: 1px solid #ddd; }
  .additional-info { margin-top: 16px; }
</style>
<ha-card header="{{.Header}}" class="{{if not .ShowDate}}no-header{{end}}">
  <div class="card-content">
{{- if .Rows}}
    <table>
      <tr><th>Lesson</th><th>Subject</th><th>Teacher</th><th>Room</th><th>Info</th></tr>
{{- range .Rows}}
      <tr>{{range .}}<td>{{if .Changed}}<span class="changed-item">{{.Text}}</span>{{else}}{{.Text}}{{end}}</td>{{end}}</tr>
{{- end}}
    </table>
{{- else}}
    <p>{{.NotFound}}</p>
{{- end}}
    <div class="additional-info">
{{- range .Notices}}
      <p>{{.}}</p>
{{- end}}
    </div>
  </div>
</ha-card>
`))

var errorTemplate = template.Must(template.New("error").Parse(`<style>
  .error { color: red; }
</style>
<ha-card>
  <div class="card-content">
    <p class="error">{{.}}</p>
  </div>
</ha-card>
`))

// HTML renders the dashboard card markup.
type HTML struct{}

type htmlCell struct {
	Text    string
	Changed bool
}

type htmlCard struct {
	Header   string
	ShowDate bool
	Rows     [][]htmlCell
	NotFound string
	Notices  []string
}

func (HTML) Render(w io.Writer, plan *vplan.Plan, opts Options) error {
	card := htmlCard{
		Header:   headerDate(plan, opts),
		ShowDate: opts.ShowDate,
		NotFound: notFoundMessage(plan.Class),
		Notices:  plan.Notices,
	}

	cell := func(c vplan.Cell, fallback string) htmlCell {
		return htmlCell{Text: cellText(c, fallback), Changed: c.Changed}
	}
	for _, l := range plan.Lessons {
		card.Rows = append(card.Rows, []htmlCell{
			cell(l.Period, "---"),
			cell(l.Subject, "---"),
			cell(l.Teacher, "---"),
			cell(l.Room, "---"),
			cell(l.Info, ""),
		})
	}

	return cardTemplate.Execute(w, card)
}

func (HTML) RenderError(w io.Writer, err error) error {
	return errorTemplate.Execute(w, err.Error())
}
