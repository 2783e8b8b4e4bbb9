package report

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(r Renderer, dir string, opts ...Option) *Generator {
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewGenerator(r, "Little Farms System", dir, opts...)
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names
}

func TestGenerator_Generate(t *testing.T) {
	dir := t.TempDir()
	var logs bytes.Buffer
	ctx := zerolog.New(&logs).WithContext(context.Background())

	res, err := newTestGenerator(NewPDFRenderer("A4", true), dir).Generate(ctx, teamSummaryRequest())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "x.pdf"), res.Path)
	assert.Equal(t, FormatPDF, res.Format)
	assert.Equal(t, 1, res.Rows)
	assert.Equal(t, map[string]int{"open": 1}, res.Summary.ByStatus)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Equal(t, []string{"x.pdf"}, dirEntries(t, dir))

	assert.Contains(t, logs.String(), `"message":"report written"`)
}

func TestGenerator_AbsoluteFilenameIgnoresOutputDir(t *testing.T) {
	outDir, target := t.TempDir(), t.TempDir()
	req := teamSummaryRequest()
	req.Filename = filepath.Join(target, "abs.csv")

	res, err := newTestGenerator(NewCSVRenderer(), outDir).Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, req.Filename, res.Path)
	assert.Empty(t, dirEntries(t, outDir))
}

func TestGenerator_CreatesMissingDirectories(t *testing.T) {
	dir := t.TempDir()
	req := teamSummaryRequest()
	req.Filename = filepath.Join("2024", "march", "summary.json")

	res, err := newTestGenerator(NewJSONRenderer(), dir).Generate(context.Background(), req)
	require.NoError(t, err)
	assert.FileExists(t, res.Path)
}

func TestGenerator_UnwritablePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	req := teamSummaryRequest()
	req.Filename = filepath.Join(blocker, "x.pdf")

	_, err := newTestGenerator(NewPDFRenderer("A4", true), "").Generate(context.Background(), req)
	require.ErrorIs(t, err, ErrRender)
	assert.Equal(t, []string{"not-a-dir"}, dirEntries(t, dir))
}

type brokenRenderer struct{ written int }

func (b *brokenRenderer) Format() Format { return FormatPDF }

func (b *brokenRenderer) Render(doc *Document, w io.Writer) error {
	n, _ := w.Write([]byte("%PDF-1.3 partial"))
	b.written = n
	return errors.New("layout exploded")
}

func TestGenerator_RenderFailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	r := &brokenRenderer{}

	_, err := newTestGenerator(r, dir).Generate(context.Background(), teamSummaryRequest())
	require.ErrorIs(t, err, ErrRender)
	assert.Contains(t, err.Error(), "layout exploded")
	assert.Greater(t, r.written, 0)
	assert.Empty(t, dirEntries(t, dir))
}

func TestGenerator_EmptyRecords(t *testing.T) {
	dir := t.TempDir()
	for _, kind := range Kinds() {
		req := Request{Kind: kind, Filename: "empty.pdf"}
		_, err := newTestGenerator(NewPDFRenderer("A4", true), dir).Generate(context.Background(), req)
		assert.ErrorIs(t, err, ErrValidation, string(kind))
	}
	assert.Empty(t, dirEntries(t, dir))
}

func TestGenerator_UnknownKind(t *testing.T) {
	req := teamSummaryRequest()
	req.Kind = "unknown-kind"

	_, err := newTestGenerator(NewPDFRenderer("A4", true), t.TempDir()).Generate(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGenerator_StagesRunInOrder(t *testing.T) {
	var stages []string
	g := newTestGenerator(NewCSVRenderer(), t.TempDir(), WithProgress(func(stage string) {
		stages = append(stages, stage)
	}))

	_, err := g.Generate(context.Background(), teamSummaryRequest())
	require.NoError(t, err)
	assert.Equal(t, []string{StageMap, StageBuild, StageRender, StageFlush}, stages)
	assert.Len(t, stages, StageCount)
}

func TestGenerator_CanceledBeforeStart(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestGenerator(NewPDFRenderer("A4", true), dir).Generate(ctx, teamSummaryRequest())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, dirEntries(t, dir))
}

func TestGenerator_TwoRendersSameTable(t *testing.T) {
	dir := t.TempDir()
	g := newTestGenerator(NewCSVRenderer(), dir)

	first := teamSummaryRequest()
	first.Filename = "a.csv"
	second := teamSummaryRequest()
	second.Filename = "b.csv"

	_, err := g.Generate(context.Background(), first)
	require.NoError(t, err)
	_, err = g.Generate(context.Background(), second)
	require.NoError(t, err)

	a, err := os.ReadFile(filepath.Join(dir, "a.csv"))
	require.NoError(t, err)
	b, err := os.ReadFile(filepath.Join(dir, "b.csv"))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSummarize(t *testing.T) {
	req := Request{
		Kind: KindLoggedTime,
		Records: []RawRecord{
			{"No. of Hours": "2.5"},
			{"No. of Hours": "4"},
			{"No. of Hours": "n/a"},
			{},
		},
	}
	sum := Summarize(buildDocument(t, req, fixedNow))
	assert.Equal(t, 4, sum.Total)
	assert.InDelta(t, 6.5, sum.Hours, 0.0001)
	assert.Empty(t, sum.ByStatus)

	req = Request{
		Kind: KindTaskCompletion,
		Records: []RawRecord{
			{"Status": "Done"},
			{"Status": " done "},
			{"Status": "In Progress"},
			{},
		},
	}
	sum = Summarize(buildDocument(t, req, fixedNow))
	assert.Equal(t, map[string]int{"done": 2, "in progress": 1, "unknown": 1}, sum.ByStatus)
	assert.Zero(t, sum.Hours)
}
