package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Stages reported to the progress callback, in order.
const (
	StageMap    = "mapping records"
	StageBuild  = "building document"
	StageRender = "rendering"
	StageFlush  = "writing file"
)

// StageCount is the number of stages a successful Generate passes through.
const StageCount = 4

type Generator struct {
	Renderer  Renderer
	Author    string
	OutputDir string

	now      func() time.Time
	progress func(stage string)
}

type Option func(*Generator)

func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithProgress registers fn to be called as each stage starts.
func WithProgress(fn func(stage string)) Option {
	return func(g *Generator) { g.progress = fn }
}

func NewGenerator(renderer Renderer, author, outputDir string, opts ...Option) *Generator {
	g := &Generator{
		Renderer:  renderer,
		Author:    author,
		OutputDir: outputDir,
		now:       time.Now,
		progress:  func(string) {},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type Result struct {
	Path    string
	Format  Format
	Rows    int
	Summary Summary
}

// Generate maps, lays out and writes the report described by req. The stages
// run strictly in order and nothing is retried. On error no output file is
// left on disk.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := zerolog.Ctx(ctx).With().Str("report_type", string(req.Kind)).Logger()

	g.progress(StageMap)
	layout, err := LayoutFor(req.Kind, req.Variant)
	if err != nil {
		return nil, err
	}
	if len(req.Records) == 0 {
		return nil, fmt.Errorf("%w: no data provided for %s report", ErrValidation, req.Kind)
	}
	rows := MapRecords(layout, req.Records)
	log.Debug().Int("rows", len(rows)).Strs("columns", layout.Headers()).Msg("records mapped")

	g.progress(StageBuild)
	doc, err := BuildDocument(req, layout, rows, g.Author, g.now())
	if err != nil {
		return nil, err
	}

	path := g.resolve(req.Filename)

	g.progress(StageRender)
	if err := g.writeFile(path, doc); err != nil {
		return nil, err
	}

	res := &Result{
		Path:    path,
		Format:  g.Renderer.Format(),
		Rows:    len(doc.Rows),
		Summary: Summarize(doc),
	}
	log.Info().
		Str("file", path).
		Str("format", string(res.Format)).
		Int("rows", res.Rows).
		Interface("by_status", res.Summary.ByStatus).
		Msg("report written")

	return res, nil
}

func (g *Generator) resolve(filename string) string {
	if g.OutputDir == "" || filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(g.OutputDir, filename)
}

// writeFile renders into a temporary file next to path and renames it into
// place once it is complete and closed.
func (g *Generator) writeFile(path string, doc *Document) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: failed to create output directory: %v", ErrRender, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: cannot write to %s: %v", ErrRender, dir, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := g.Renderer.Render(doc, tmp); err != nil {
		if !errors.Is(err, ErrRender) {
			err = fmt.Errorf("%w: %v", ErrRender, err)
		}
		return err
	}

	g.progress(StageFlush)
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	return nil
}

// Summary holds totals over the rendered rows.
type Summary struct {
	Total    int
	ByStatus map[string]int
	Hours    float64
}

// Summarize counts rows per status and adds up logged hours. Hours that do
// not parse as a number are skipped.
func Summarize(doc *Document) Summary {
	sum := Summary{
		Total:    len(doc.Rows),
		ByStatus: make(map[string]int),
	}

	for _, row := range doc.Rows {
		if status, ok := row.Get("Status"); ok {
			status = strings.ToLower(strings.TrimSpace(status))
			if status == "" {
				status = "unknown"
			}
			sum.ByStatus[status]++
		}
		if hours, ok := row.Get("No. of Hours"); ok {
			if v, err := strconv.ParseFloat(strings.TrimSpace(hours), 64); err == nil {
				sum.Hours += v
			}
		}
	}

	return sum
}
