package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Afrawles/taskreport/internal/report"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/schollz/progressbar/v3"
)

func newProgressBar(w io.Writer, steps int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(steps,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(20),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(50*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

func finishBar(bar *progressbar.ProgressBar) {
	if bar != nil {
		_ = bar.Finish()
	}
}

func kindList() string {
	kinds := report.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

var (
	kindsBorder = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	kindsHeader = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	kindsCell   = lipgloss.NewStyle().Padding(0, 1)
)

// listKinds prints one table row per report type with its view and columns.
func listKinds(w io.Writer, variant string) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(kindsBorder).
		Headers("Type", "Name", "View", "Columns").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row < 0 {
				return kindsHeader
			}
			return kindsCell
		})

	for _, k := range report.Kinds() {
		layout, err := report.LayoutFor(k, variant)
		if err != nil {
			return err
		}
		t = t.Row(string(k), k.DisplayName(), layout.ViewName, strings.Join(layout.Headers(), ", "))
	}

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// oneLine folds a multi-line error into a single diagnostic line.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
