package taskreport

import (
	"context"
	"io"
	"os"

	"github.com/Afrawles/taskreport/internal/config"
	"github.com/Afrawles/taskreport/internal/report"
	"github.com/rs/zerolog"
)

type Application struct {
	Config    *config.Config
	Logger    zerolog.Logger
	Format    report.Format
	Generator *report.Generator
}

// New wires the generator for cfg. Logs go to logOut, which is stderr in the
// CLI so stdout stays free.
func New(cfg *config.Config, logOut io.Writer, opts ...report.Option) (*Application, error) {
	if logOut == nil {
		logOut = os.Stderr
	}
	logger := zerolog.New(logOut).Level(cfg.Level()).With().Timestamp().Logger()

	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	renderer, err := report.NewRenderer(format, cfg.PageSize, cfg.Compress)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("format", string(format)).
		Str("page_size", cfg.PageSize).
		Str("output_dir", cfg.OutputDir).
		Msg("generator initialized")

	return &Application{
		Config:    cfg,
		Logger:    logger,
		Format:    format,
		Generator: report.NewGenerator(renderer, cfg.Author, cfg.OutputDir, opts...),
	}, nil
}

// GenerateReport reads one request from in and writes the report it
// describes.
func (app *Application) GenerateReport(ctx context.Context, in io.Reader) (*report.Result, error) {
	ctx = app.Logger.WithContext(ctx)

	req, err := report.ReadRequest(in, app.Format.Ext())
	if err != nil {
		return nil, err
	}

	app.Logger.Info().
		Str("report_type", string(req.Kind)).
		Str("file", req.Filename).
		Str("time_frame", req.TimeFrame).
		Int("records", len(req.Records)).
		Msg("generating report")

	res, err := app.Generator.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	app.Logger.Info().
		Int("total", res.Summary.Total).
		Float64("hours", res.Summary.Hours).
		Msg("report generation complete")

	return res, nil
}
