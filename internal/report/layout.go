package report

import (
	"fmt"
	"slices"
)

const pointsPerInch = 72.0

// VariantUser switches the task completion report from an assignee column to
// a project column.
const VariantUser = "user"

type Column struct {
	Key     string
	Header  string
	Width   float64 // points
	Default string
}

// Style holds the fixed presentation parameters shared by every renderer.
type Style struct {
	FontFamily string

	TitleColor    string
	TitleSize     float64
	TitleSpace    float64
	SubtitleColor string
	SubtitleSize  float64
	SubtitleSpace float64
	HeaderFill    string
	HeaderText    string
	HeaderSize    float64
	HeaderPadding float64
	BodySize      float64
	BodyLeading   float64
	GridColor     string
	GridWidth     float64
	RowShades     [2]string
	FooterColor   string
	FooterSize    float64
	FooterSpace   float64
	CellPadding   float64
	RowPadding    float64
	TopMargin     float64
	BottomMargin  float64
	SideMargin    float64
}

var defaultStyle = Style{
	FontFamily: "Helvetica",

	TitleColor:    "#2C3E50",
	TitleSize:     16,
	TitleSpace:    20,
	SubtitleColor: "#7F8C8D",
	SubtitleSize:  12,
	SubtitleSpace: 30,
	HeaderFill:    "#34495E",
	HeaderText:    "#F5F5F5",
	HeaderSize:    11,
	HeaderPadding: 10,
	BodySize:      9,
	BodyLeading:   11,
	GridColor:     "#BDC3C7",
	GridWidth:     0.5,
	RowShades:     [2]string{"#FFFFFF", "#F8F9F9"},
	FooterColor:   "#7F8C8D",
	FooterSize:    8,
	FooterSpace:   0.4 * pointsPerInch,
	CellPadding:   6,
	RowPadding:    3,
	TopMargin:     0.5 * pointsPerInch,
	BottomMargin:  0.5 * pointsPerInch,
	SideMargin:    1 * pointsPerInch,
}

// DefaultStyle returns the report style. The returned value is a copy.
func DefaultStyle() Style {
	return defaultStyle
}

// Layout is the static table configuration of one report kind.
type Layout struct {
	Kind     Kind
	Title    string
	ViewName string
	Columns  []Column

	subtitle string
}

// Subtitle fills the layout's subtitle with the request labels.
func (l Layout) Subtitle(title, timeFrame string) string {
	return fmt.Sprintf(l.subtitle, title, timeFrame)
}

func (l Layout) Headers() []string {
	headers := make([]string, len(l.Columns))
	for i, c := range l.Columns {
		headers[i] = c.Header
	}
	return headers
}

func inches(v float64) float64 { return v * pointsPerInch }

func col(key string, width float64) Column {
	return Column{Key: key, Header: key, Width: inches(width)}
}

var (
	taskCompletionByUser     = taskCompletionLayout(true)
	taskCompletionByAssignee = taskCompletionLayout(false)

	teamSummary = Layout{
		Kind:     KindTeamSummary,
		Title:    "Project Summary Report",
		ViewName: "Project Summary View",
		subtitle: "Summary Report for %s - Timeframe: %s",
		Columns: []Column{
			col("Task Name", 2.0),
			col("Assignee List", 1.5),
			col("Status", 1.0),
			col("Deadline", 1.0),
		},
	}

	loggedTime = Layout{
		Kind:     KindLoggedTime,
		Title:    "Logged Time Report",
		ViewName: "Logged Time View",
		subtitle: "Time Report for %s - Timeframe: %s",
		Columns: []Column{
			col("Project Name", 1.8),
			col("Task Name", 1.8),
			col("Staff Name", 1.5),
			col("Department", 1.2),
			{Key: "No. of Hours", Header: "Hours", Width: inches(0.7), Default: "0"},
		},
	}
)

func taskCompletionLayout(byUser bool) Layout {
	third := col("Assignee List", 1.6)
	if byUser {
		third = col("Project Name", 1.6)
	}
	return Layout{
		Kind:     KindTaskCompletion,
		Title:    "Task Completion Report",
		ViewName: "Task Completion View",
		subtitle: "Completion Report for %s for the duration of %s",
		Columns: []Column{
			col("Task Name", 1.8),
			col("Owner of Task", 1.6),
			third,
			col("Status", 1.1),
			col("Completion date", 1.1),
		},
	}
}

// LayoutFor returns the layout of kind. The variant is only consulted for
// task completion reports.
func LayoutFor(kind Kind, variant string) (Layout, error) {
	var l Layout
	switch kind {
	case KindTaskCompletion:
		l = taskCompletionByAssignee
		if variant == VariantUser {
			l = taskCompletionByUser
		}
	case KindTeamSummary:
		l = teamSummary
	case KindLoggedTime:
		l = loggedTime
	default:
		return Layout{}, fmt.Errorf("%w: unknown report type '%s'", ErrValidation, kind)
	}
	l.Columns = slices.Clone(l.Columns)
	return l, nil
}
