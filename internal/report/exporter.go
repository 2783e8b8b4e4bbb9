package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

func Formats() []Format {
	return []Format{FormatPDF, FormatXLSX, FormatCSV, FormatJSON}
}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// Ext is the file extension of the format, without the dot.
func (f Format) Ext() string {
	return string(f)
}

// Renderer writes a finished document in one output format.
type Renderer interface {
	Format() Format
	Render(doc *Document, w io.Writer) error
}

// NewRenderer returns the renderer for format.
func NewRenderer(format Format, pageSize string, compress bool) (Renderer, error) {
	switch format {
	case FormatPDF:
		return NewPDFRenderer(pageSize, compress), nil
	case FormatXLSX:
		return NewExcelRenderer(), nil
	case FormatCSV:
		return NewCSVRenderer(), nil
	case FormatJSON:
		return NewJSONRenderer(), nil
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

type JSONRenderer struct{}

func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

func (r *JSONRenderer) Format() Format {
	return FormatJSON
}

type jsonDocument struct {
	Title       string     `json:"title"`
	Subtitle    string     `json:"subtitle"`
	Author      string     `json:"author,omitempty"`
	Headers     []string   `json:"headers"`
	Rows        [][]string `json:"rows"`
	Footer      string     `json:"footer"`
	GeneratedAt string     `json:"generated_at"`
}

func (r *JSONRenderer) Render(doc *Document, w io.Writer) error {
	out := jsonDocument{
		Title:       doc.Title,
		Subtitle:    doc.Subtitle,
		Author:      doc.Author,
		Headers:     doc.Headers(),
		Rows:        doc.Cells(),
		Footer:      doc.Footer,
		GeneratedAt: doc.GeneratedAt.Format(time.RFC3339),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	return nil
}
