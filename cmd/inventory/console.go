package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/aerovista-us/echovalentine/internal/core"
	"github.com/aerovista-us/echovalentine/internal/report"
	"github.com/aerovista-us/echovalentine/pkg/models"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

var (
	colorAccent = lipgloss.Color("#FF8700")
	colorSubtle = lipgloss.Color("#8A8A8A")
	colorOK     = lipgloss.Color("#00FF99")
	colorDanger = lipgloss.Color("#FF0055")

	titleStyle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(colorSubtle)
	valueStyle  = lipgloss.NewStyle().Foreground(colorAccent)
	okStyle     = lipgloss.NewStyle().Foreground(colorOK).Bold(true)
	dangerStyle = lipgloss.NewStyle().Foreground(colorDanger).Bold(true)
)

// printMainBanner prints the main banner
func printMainBanner() {
	fmt.Println()
	fmt.Println(titleStyle.Render("INVENTORY"))
	fmt.Println(labelStyle.Render("Directory inventory scanner v" + version))
	fmt.Println()
}

// printBanner prints the scan header
func printBanner(path string, workers int) {
	fmt.Println()
	fmt.Println(titleStyle.Render("INVENTORY SCAN"))
	fmt.Println()
	fmt.Printf("  %s %s\n", labelStyle.Render("Path:   "), path)
	fmt.Printf("  %s %d\n", labelStyle.Render("Workers:"), workers)
	fmt.Println()
}

func printError(title string, err error) {
	fmt.Printf("\n  %s %s\n\n", dangerStyle.Render("✗ "+title+":"), err.Error())
}

// printSummary prints scan totals
func printSummary(results *models.ScanResults) {
	stats := results.Stats
	fmt.Println()
	fmt.Println(titleStyle.Render("SCAN COMPLETE"))
	fmt.Println()
	row := func(label string, value any) {
		fmt.Printf("  %s %v\n", labelStyle.Render(fmt.Sprintf("%-12s", label+":")), value)
	}
	row("Files", results.TotalFiles)
	row("Directories", results.TotalDirs)
	row("Excluded", results.ExcludedDirs)
	row("Apps", results.Containers)
	row("Duplicates", stats.Duplicates)
	if stats.ErrorRecords > 0 || stats.HashErrors > 0 {
		row("Errors", dangerStyle.Render(fmt.Sprintf("%d records, %d hashes", stats.ErrorRecords, stats.HashErrors)))
	}
	row("Duration", report.FormatDuration(results.Duration))
	fmt.Println()
}

func savedLine(path string) string {
	return okStyle.Render("[✓]") + " Inventory saved to: " + valueStyle.Render(path)
}

func publishedLine(uri string) string {
	return okStyle.Render("[✓]") + " Inventory published to: " + valueStyle.Render(uri)
}

func noDataLine() string {
	return dangerStyle.Render("[X]") + " No inventory data found."
}

// consoleProgress renders scanner progress on a single, rewritten line
type consoleProgress struct {
	out  io.Writer
	bar  progress.Model
	mu   sync.Mutex
	line bool
}

func newConsoleProgress(out io.Writer) *consoleProgress {
	return &consoleProgress{
		out: out,
		bar: progress.New(progress.WithGradient("#FF8700", "#00FF99"), progress.WithWidth(30)),
	}
}

// Update is a core.ProgressCallback
func (c *consoleProgress) Update(phase string, current, total int, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch phase {
	case core.PhaseWalking:
		c.println(labelStyle.Render("  Walking directory tree..."))
	case core.PhaseProcessing:
		pct := 0.0
		if total > 0 {
			pct = float64(current) / float64(total)
			if pct > 1 {
				pct = 1
			}
		}
		c.rewrite(fmt.Sprintf("  %s %s %d/%d", labelStyle.Render("Processing:"), c.bar.ViewAs(pct), current, total))
	case core.PhaseDedup, core.PhaseReport, core.PhasePublish:
		c.println(labelStyle.Render("  " + message))
	}
}

// Done terminates a pending progress line
func (c *consoleProgress) Done() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.line {
		fmt.Fprintln(c.out)
		c.line = false
	}
}

func (c *consoleProgress) rewrite(s string) {
	fmt.Fprintf(c.out, "\r\033[K%s", s)
	c.line = true
}

func (c *consoleProgress) println(s string) {
	if c.line {
		fmt.Fprintln(c.out)
		c.line = false
	}
	fmt.Fprintln(c.out, s)
}
