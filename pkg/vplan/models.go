package vplan

// Status tells a caller which message to render for an extracted plan.
type Status int

const (
	// StatusFound means the class has at least one lesson row.
	StatusFound Status = iota
	// StatusNotFound means the feed is valid but lists no lessons for the class.
	StatusNotFound
)

func (s Status) String() string {
	if s == StatusFound {
		return "found"
	}
	return "not_found"
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Query selects one class from the feed.
type Query struct {
	Class  string
	Policy MatchPolicy
}

// Cell is one field of a lesson row. Changed is set when the feed marked the
// field as edited, which it does by attaching attributes to the element.
type Cell struct {
	Text    string `json:"text"`
	Changed bool   `json:"changed"`
	Present bool   `json:"present"`
}

// Lesson is one row of the substitution plan
type Lesson struct {
	Period  Cell `json:"period"`
	Subject Cell `json:"subject"`
	Teacher Cell `json:"teacher"`
	Room    Cell `json:"room"`
	Info    Cell `json:"info"`

	Number string `json:"number,omitempty"`
	Begin  string `json:"begin,omitempty"` // "07:45"
	End    string `json:"end,omitempty"`
}

// Header carries the plan's Kopf block
type Header struct {
	Date      string `json:"date,omitempty"`      // "Montag, 06. Oktober 2025"
	Timestamp string `json:"timestamp,omitempty"` // "03.10.2025, 14:12"
	File      string `json:"file,omitempty"`      // "PlanKl20251006.xml"
}

// Plan is the render-ready result for one class.
type Plan struct {
	Class   string   `json:"class"`
	Status  Status   `json:"status"`
	Header  Header   `json:"header"`
	Lessons []Lesson `json:"lessons"`
	Notices []string `json:"notices"`
}
