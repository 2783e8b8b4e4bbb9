package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
)

const creator = "taskreport"

type PDFRenderer struct {
	Style    Style
	PageSize string
	Compress bool
}

func NewPDFRenderer(pageSize string, compress bool) *PDFRenderer {
	if pageSize == "" {
		pageSize = "A4"
	}
	return &PDFRenderer{
		Style:    DefaultStyle(),
		PageSize: pageSize,
		Compress: compress,
	}
}

var _ Renderer = (*PDFRenderer)(nil)

func (r *PDFRenderer) Format() Format {
	return FormatPDF
}

// Render draws the title block, the table and the footer of doc and writes
// the finished PDF to w. Nothing is written when layout fails.
func (r *PDFRenderer) Render(doc *Document, w io.Writer) error {
	s := r.Style

	pdf := fpdf.New("P", "pt", r.PageSize, "")
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	pdf.SetCompression(r.Compress)
	pdf.SetCatalogSort(true)
	pdf.SetMargins(s.SideMargin, s.TopMargin, s.SideMargin)
	pdf.SetAutoPageBreak(false, s.BottomMargin)
	pdf.SetTitle(doc.Title, true)
	pdf.SetAuthor(doc.Author, true)
	pdf.SetCreator(creator, false)
	pdf.SetCreationDate(doc.GeneratedAt)

	p := &pdfPage{Fpdf: pdf, style: s, pageSize: r.PageSize, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	p.AddPage()

	p.paragraph(doc.Title, "B", s.TitleSize, s.TitleColor)
	p.Ln(s.TitleSpace)
	p.paragraph(doc.Subtitle, "", s.SubtitleSize, s.SubtitleColor)
	p.Ln(s.SubtitleSpace)

	if err := p.table(doc); err != nil {
		return err
	}

	p.ensureSpace(s.FooterSpace + s.FooterSize*1.2)
	p.SetY(p.GetY() + s.FooterSpace)
	p.paragraph(doc.Footer, "", s.FooterSize, s.FooterColor)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	return nil
}

type pdfPage struct {
	*fpdf.Fpdf
	style    Style
	pageSize string
	tr       func(string) string
}

func (p *pdfPage) paragraph(text, fontStyle string, size float64, color string) {
	p.SetFont(p.style.FontFamily, fontStyle, size)
	p.SetTextColor(hexRGB(color))
	p.MultiCell(0, size*1.2, p.tr(text), "", "C", false)
}

func (p *pdfPage) ensureSpace(h float64) {
	_, pageH := p.GetPageSize()
	if p.GetY()+h > pageH-p.style.BottomMargin {
		p.AddPage()
	}
}

// table draws the header and one row per record. A row moves to the next
// page when it does not fit; a row taller than a whole page is split between
// lines. The header is repeated on every page the table continues onto and
// is never left at the bottom of a page without a row under it.
func (p *pdfPage) table(doc *Document) error {
	s := p.style
	pageW, pageH := p.GetPageSize()
	left := (pageW - doc.TableWidth()) / 2
	bottom := pageH - s.BottomMargin

	p.SetLineWidth(s.GridWidth)
	p.SetDrawColor(hexRGB(s.GridColor))

	head, headH := p.headerLines(doc)
	bodyRoom := bottom - s.TopMargin - headH
	minRow := s.BodyLeading + 2*s.RowPadding
	if bodyRoom < minRow {
		return fmt.Errorf("%w: table header does not fit on a %s page", ErrRender, p.pageSize)
	}

	rows := p.bodyLines(doc)
	first := minRow
	if len(rows) > 0 && p.rowHeight(rows[0]) <= bodyRoom {
		first = p.rowHeight(rows[0])
	}
	if p.GetY()+headH+first > bottom {
		p.AddPage()
	}
	p.header(doc, left, head, headH)

	fresh := true
	for i, lines := range rows {
		fill := s.RowShades[i%2]
		for {
			h := p.rowHeight(lines)
			room := bottom - p.GetY()
			if h <= room+0.001 {
				p.bodyRow(doc, left, h, lines, fill)
				fresh = false
				break
			}
			if !fresh && (h <= bodyRoom || room < minRow) {
				p.AddPage()
				p.header(doc, left, head, headH)
				fresh = true
				continue
			}

			n := max(1, int((room-2*s.RowPadding)/s.BodyLeading))
			part, rest := splitRow(lines, n)
			p.bodyRow(doc, left, p.rowHeight(part), part, fill)
			lines = rest
			p.AddPage()
			p.header(doc, left, head, headH)
			fresh = true
		}
	}
	return nil
}

func (p *pdfPage) headerLines(doc *Document) ([][]string, float64) {
	s := p.style
	p.SetFont(s.FontFamily, "B", s.HeaderSize)

	lines := make([][]string, len(doc.Columns))
	n := 1
	for j, c := range doc.Columns {
		lines[j] = p.wrap(c.Header, c.Width-2*s.CellPadding)
		n = max(n, len(lines[j]))
	}
	return lines, float64(n)*s.HeaderSize*1.2 + s.RowPadding + s.HeaderPadding
}

func (p *pdfPage) bodyLines(doc *Document) [][][]string {
	s := p.style
	p.SetFont(s.FontFamily, "", s.BodySize)

	cells := doc.Cells()
	rows := make([][][]string, len(cells))
	for i, row := range cells {
		rows[i] = make([][]string, len(row))
		for j, text := range row {
			rows[i][j] = p.wrap(text, doc.Columns[j].Width-2*s.CellPadding)
		}
	}
	return rows
}

func (p *pdfPage) rowHeight(lines [][]string) float64 {
	n := 1
	for _, cell := range lines {
		n = max(n, len(cell))
	}
	return float64(n)*p.style.BodyLeading + 2*p.style.RowPadding
}

// splitRow keeps the first n lines of every cell and returns the remainder.
func splitRow(lines [][]string, n int) (part, rest [][]string) {
	part = make([][]string, len(lines))
	rest = make([][]string, len(lines))
	for j, cell := range lines {
		k := min(n, len(cell))
		part[j], rest[j] = cell[:k], cell[k:]
	}
	return part, rest
}

func (p *pdfPage) header(doc *Document, left float64, lines [][]string, h float64) {
	s := p.style
	p.SetFont(s.FontFamily, "B", s.HeaderSize)
	p.SetTextColor(hexRGB(s.HeaderText))
	p.row(doc, left, h, lines, s.HeaderSize*1.2, s.HeaderFill)
}

func (p *pdfPage) bodyRow(doc *Document, left, h float64, lines [][]string, fill string) {
	s := p.style
	p.SetFont(s.FontFamily, "", s.BodySize)
	p.SetTextColor(0, 0, 0)
	p.row(doc, left, h, lines, s.BodyLeading, fill)
}

// row draws one table row at the current y and moves below it. Text is
// centered in both directions inside each cell.
func (p *pdfPage) row(doc *Document, left, h float64, lines [][]string, leading float64, fill string) {
	y := p.GetY()
	x := left
	p.SetFillColor(hexRGB(fill))
	for j, c := range doc.Columns {
		p.Rect(x, y, c.Width, h, "FD")
		top := y + (h-float64(len(lines[j]))*leading)/2
		for k, line := range lines[j] {
			p.SetXY(x, top+float64(k)*leading)
			p.CellFormat(c.Width, leading, line, "", 0, "C", false, 0, "")
		}
		x += c.Width
	}
	p.SetXY(left, y+h)
}

// wrap splits text into lines no wider than w using the current font.
// Words longer than a line are broken.
func (p *pdfPage) wrap(text string, w float64) []string {
	var lines []string
	for _, b := range p.SplitLines([]byte(p.tr(text)), w) {
		lines = append(lines, string(b))
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

// hexRGB converts "#RRGGBB" to its components. Invalid input yields black.
func hexRGB(hex string) (int, int, int) {
	v, err := strconv.ParseUint(strings.TrimPrefix(hex, "#"), 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF)
}
