package report

import (
	"fmt"
	"time"
)

const footerSeparator = " | "

// Document is everything a renderer draws: title block, table and footer.
type Document struct {
	Title       string
	Subtitle    string
	Author      string
	ViewName    string
	Columns     []Column
	Rows        []MappedRecord
	Footer      string
	GeneratedAt time.Time
}

// BuildDocument assembles the document for req from already mapped rows.
// Every row must carry every column of the layout.
func BuildDocument(req Request, layout Layout, rows []MappedRecord, author string, now time.Time) (*Document, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows to render for %s report", ErrRender, layout.Kind)
	}
	for i, row := range rows {
		for _, c := range layout.Columns {
			if _, ok := row.Get(c.Key); !ok {
				return nil, fmt.Errorf("%w: row %d is missing column %q", ErrRender, i, c.Key)
			}
		}
	}

	return &Document{
		Title:       layout.Title,
		Subtitle:    layout.Subtitle(req.Title, req.TimeFrame),
		Author:      author,
		ViewName:    layout.ViewName,
		Columns:     layout.Columns,
		Rows:        rows,
		Footer:      footerText(now, layout.ViewName),
		GeneratedAt: now,
	}, nil
}

func footerText(now time.Time, view string) string {
	return fmt.Sprintf("Generated on %s at %s%s%s",
		now.Format("2006-01-02"), now.Format("15:04"), footerSeparator, view)
}

func (d *Document) Headers() []string {
	headers := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		headers[i] = c.Header
	}
	return headers
}

// Cells returns the body of the table, one string slice per row in column
// order.
func (d *Document) Cells() [][]string {
	cells := make([][]string, len(d.Rows))
	for i, row := range d.Rows {
		line := make([]string, len(d.Columns))
		for j, c := range d.Columns {
			line[j], _ = row.Get(c.Key)
		}
		cells[i] = line
	}
	return cells
}

// TableWidth is the sum of all column widths in points.
func (d *Document) TableWidth() float64 {
	var w float64
	for _, c := range d.Columns {
		w += c.Width
	}
	return w
}
