package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// points per character of excel column width, close enough for Calibri 11
const pointsPerExcelChar = 5.25

const (
	excelTitleRow  = 1
	excelHeaderRow = 4
)

type ExcelRenderer struct {
	Style Style
}

func NewExcelRenderer() *ExcelRenderer {
	return &ExcelRenderer{Style: DefaultStyle()}
}

var _ Renderer = (*ExcelRenderer)(nil)

func (e *ExcelRenderer) Format() Format {
	return FormatXLSX
}

func (e *ExcelRenderer) Render(doc *Document, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := e.createReportSheet(f, sanitizeSheetName(doc.ViewName), doc); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}

	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   doc.Title,
		Creator: doc.Author,
		Created: doc.GeneratedAt.UTC().Format(time.RFC3339),
	}); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("%w: failed to write excel file: %v", ErrRender, err)
	}
	return nil
}

type excelStyles struct {
	title, subtitle, header, footer int
	rows                            [2]int
}

func (e *ExcelRenderer) newStyles(f *excelize.File) (excelStyles, error) {
	s := e.Style
	border := []excelize.Border{
		{Type: "left", Color: s.GridColor, Style: 1},
		{Type: "right", Color: s.GridColor, Style: 1},
		{Type: "top", Color: s.GridColor, Style: 1},
		{Type: "bottom", Color: s.GridColor, Style: 1},
	}
	centered := &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true}

	defs := []*excelize.Style{
		{
			Font:      &excelize.Font{Bold: true, Size: s.TitleSize, Color: s.TitleColor},
			Alignment: centered,
		},
		{
			Font:      &excelize.Font{Size: s.SubtitleSize, Color: s.SubtitleColor},
			Alignment: centered,
		},
		{
			Fill:      excelize.Fill{Type: "pattern", Color: []string{s.HeaderFill}, Pattern: 1},
			Font:      &excelize.Font{Bold: true, Size: s.HeaderSize, Color: s.HeaderText},
			Alignment: centered,
			Border:    border,
		},
		{
			Font:      &excelize.Font{Size: s.FooterSize, Color: s.FooterColor},
			Alignment: centered,
		},
		{
			Fill:      excelize.Fill{Type: "pattern", Color: []string{s.RowShades[0]}, Pattern: 1},
			Font:      &excelize.Font{Size: s.BodySize},
			Alignment: centered,
			Border:    border,
		},
		{
			Fill:      excelize.Fill{Type: "pattern", Color: []string{s.RowShades[1]}, Pattern: 1},
			Font:      &excelize.Font{Size: s.BodySize},
			Alignment: centered,
			Border:    border,
		},
	}

	ids := make([]int, len(defs))
	for i, def := range defs {
		id, err := f.NewStyle(def)
		if err != nil {
			return excelStyles{}, err
		}
		ids[i] = id
	}
	return excelStyles{
		title:    ids[0],
		subtitle: ids[1],
		header:   ids[2],
		footer:   ids[3],
		rows:     [2]int{ids[4], ids[5]},
	}, nil
}

func (e *ExcelRenderer) createReportSheet(f *excelize.File, sheetName string, doc *Document) error {
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	styles, err := e.newStyles(f)
	if err != nil {
		return err
	}

	last := len(doc.Columns)

	banner := func(row int, text string, style int) error {
		from, to := cellName(1, row), cellName(last, row)
		if err := f.SetCellStr(sheetName, from, text); err != nil {
			return err
		}
		if err := f.MergeCell(sheetName, from, to); err != nil {
			return err
		}
		return f.SetCellStyle(sheetName, from, to, style)
	}

	if err := banner(excelTitleRow, doc.Title, styles.title); err != nil {
		return err
	}
	if err := banner(excelTitleRow+1, doc.Subtitle, styles.subtitle); err != nil {
		return err
	}

	for col, header := range doc.Headers() {
		cell := cellName(col+1, excelHeaderRow)
		if err := f.SetCellStr(sheetName, cell, header); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheetName, cellName(1, excelHeaderRow), cellName(last, excelHeaderRow), styles.header); err != nil {
		return err
	}

	for i, cells := range doc.Cells() {
		row := excelHeaderRow + 1 + i
		for col, value := range cells {
			if err := f.SetCellStr(sheetName, cellName(col+1, row), value); err != nil {
				return err
			}
		}
		if err := f.SetCellStyle(sheetName, cellName(1, row), cellName(last, row), styles.rows[i%2]); err != nil {
			return err
		}
	}

	footerRow := excelHeaderRow + len(doc.Rows) + 2
	if err := banner(footerRow, doc.Footer, styles.footer); err != nil {
		return err
	}

	for i, c := range doc.Columns {
		letter := columnLetter(i + 1)
		if err := f.SetColWidth(sheetName, letter, letter, c.Width/pointsPerExcelChar); err != nil {
			return err
		}
	}

	return f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      excelHeaderRow,
		TopLeftCell: cellName(1, excelHeaderRow+1),
		ActivePane:  "bottomLeft",
	})
}

func cellName(col, row int) string {
	return fmt.Sprintf("%s%d", columnLetter(col), row)
}

func columnLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}

// sanitizeSheetName strips the characters excel refuses in sheet names and
// caps the length at 31.
func sanitizeSheetName(name string) string {
	name = strings.ReplaceAll(name, "/", "-")
	name = strings.ReplaceAll(name, "\\", "-")
	name = strings.ReplaceAll(name, "?", "")
	name = strings.ReplaceAll(name, "*", "")
	name = strings.ReplaceAll(name, ":", "")
	name = strings.ReplaceAll(name, "[", "(")
	name = strings.ReplaceAll(name, "]", ")")

	if len(name) > 31 {
		name = name[:31]
	}

	return name
}
