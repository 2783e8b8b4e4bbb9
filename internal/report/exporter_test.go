package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVRenderer_Render(t *testing.T) {
	req := Request{
		Kind:      KindLoggedTime,
		Title:     "Ops",
		TimeFrame: "March",
		Records: []RawRecord{
			{"Project Name": "P1", "Task Name": "T1", "Staff Name": "S1"},
			{"Project Name": "P2", "Task Name": "Fence, north side", "No. of Hours": "3.5"},
		},
	}
	doc := buildDocument(t, req, fixedNow)

	var buf bytes.Buffer
	require.NoError(t, NewCSVRenderer().Render(doc, &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Project Name", "Task Name", "Staff Name", "Department", "Hours"},
		{"P1", "T1", "S1", "", "0"},
		{"P2", "Fence, north side", "", "", "3.5"},
	}, rows)
}

func TestJSONRenderer_Render(t *testing.T) {
	doc := buildDocument(t, teamSummaryRequest(), fixedNow)

	var buf bytes.Buffer
	require.NoError(t, NewJSONRenderer().Render(doc, &buf))

	var got jsonDocument
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "Project Summary Report", got.Title)
	assert.Equal(t, doc.Headers(), got.Headers)
	assert.Equal(t, doc.Cells(), got.Rows)
	assert.Equal(t, doc.Footer, got.Footer)
	assert.Equal(t, "2024-03-05T09:07:42Z", got.GeneratedAt)
}

func TestNewRenderer(t *testing.T) {
	for _, format := range Formats() {
		r, err := NewRenderer(format, "A4", true)
		require.NoError(t, err)
		assert.Equal(t, format, r.Format())
	}

	_, err := NewRenderer(Format("docx"), "A4", true)
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" XLSX ")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)
	assert.Equal(t, "xlsx", f.Ext())

	_, err = ParseFormat("html")
	assert.Error(t, err)
}
