package report

import (
	"encoding/csv"
	"fmt"
	"io"
)

type CSVRenderer struct{}

func NewCSVRenderer() *CSVRenderer {
	return &CSVRenderer{}
}

var _ Renderer = (*CSVRenderer)(nil)

func (e *CSVRenderer) Format() Format {
	return FormatCSV
}

// Render writes the header row followed by one line per record. Title and
// footer are left out so the file stays loadable as plain tabular data.
func (e *CSVRenderer) Render(doc *Document, w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(doc.Headers()); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	if err := writer.WriteAll(doc.Cells()); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}

	return nil
}
