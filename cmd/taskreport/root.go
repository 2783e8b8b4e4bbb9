package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/Afrawles/taskreport/internal/config"
	"github.com/Afrawles/taskreport/internal/report"
	"github.com/Afrawles/taskreport/internal/taskreport"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type options struct {
	configPath   string
	inputPath    string
	showProgress bool
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "taskreport",
		Short: "Render task, project and logged time records into PDF reports",
		Long: `taskreport reads a JSON job description on standard input, maps its
records onto the columns of the requested report type and writes the report
to the requested file.

Report types: ` + kindList() + `.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("failed to load .env file: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return generateReport(cmd, opts, stdin, stdout, stderr)
		},
	}
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to a config file (yaml, json or toml)")

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.inputPath, "input", "i", "", "Read the job from this file instead of stdin")
	flags.BoolVar(&opts.showProgress, "progress", false, "Show a progress bar on stderr")
	flags.StringP("format", "f", "pdf", "Output format: pdf, xlsx, csv, json")
	flags.StringP("output-dir", "o", "", "Directory for relative output filenames")
	flags.String("author", "Little Farms System", "Author stored in the document metadata")
	flags.String("page-size", "A4", "Page size: A3, A4, A5, Letter, Legal")
	flags.String("log-level", "warn", "Log level: debug, info, warn, error")
	flags.Bool("compress", true, "Compress PDF content streams")

	rootCmd.AddCommand(newKindsCmd(stdout))

	return rootCmd
}

func newKindsCmd(stdout io.Writer) *cobra.Command {
	var variant string

	kindsCmd := &cobra.Command{
		Use:   "kinds",
		Short: "List the supported report types and their columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listKinds(stdout, variant)
		},
	}
	kindsCmd.Flags().StringVar(&variant, "filter-type", "undefined", "filter_type used to pick task completion columns")

	return kindsCmd
}

func generateReport(cmd *cobra.Command, opts *options, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.Load(opts.configPath, cmd.Flags())
	if err != nil {
		return err
	}

	in := stdin
	if opts.inputPath != "" {
		f, err := os.Open(opts.inputPath)
		if err != nil {
			return fmt.Errorf("%w: %v", report.ErrInput, err)
		}
		defer f.Close()
		in = f
	}

	var genOpts []report.Option
	if opts.showProgress {
		bar := newProgressBar(stderr, report.StageCount, "Generating report")
		defer finishBar(bar)
		genOpts = append(genOpts, report.WithProgress(func(stage string) {
			bar.Describe(stage)
			_ = bar.Add(1)
		}))
	}

	app, err := taskreport.New(cfg, stderr, genOpts...)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	res, err := app.GenerateReport(ctx, in)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Report saved to %s (%s, %d rows)\n", res.Path, strings.ToUpper(string(res.Format)), res.Rows)
	return nil
}

// run executes the command line and returns the process exit code. Any
// error becomes a single line on stderr.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd(stdin, stdout, stderr)
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", oneLine(err.Error()))
		return 1
	}
	return 0
}
