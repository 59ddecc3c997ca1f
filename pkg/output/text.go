package output

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/loggaliza/loggaliza/pkg/config"
	"github.com/loggaliza/loggaliza/pkg/stats"
)

const reportWidth = 65

// styleSet holds the lipgloss styles the text report is drawn with.
type styleSet struct {
	frame  lipgloss.Style // report frame and footer
	title  lipgloss.Style // section titles
	rule   lipgloss.Style // horizontal rules, column headers
	dim    lipgloss.Style // percentages and secondary figures
	value  lipgloss.Style // primary figures
	rank   lipgloss.Style // ranking indexes
	info   lipgloss.Style
	warn   lipgloss.Style
	errSty lipgloss.Style
	fatal  lipgloss.Style // high error rate banner
	notice lipgloss.Style // moderate error rate banner
	ok     lipgloss.Style // "no errors" notice
	perf   lipgloss.Style // average latency figure
	bar    lipgloss.Style // endpoint frequency bars
}

func newStyles(noColor bool) styleSet {
	plain := lipgloss.NewStyle()
	if noColor {
		return styleSet{
			frame: plain, title: plain, rule: plain, dim: plain,
			value: plain, rank: plain, info: plain, warn: plain,
			errSty: plain, fatal: plain, notice: plain, ok: plain,
			perf: plain, bar: plain,
		}
	}

	return styleSet{
		frame:  lipgloss.NewStyle().Foreground(lipgloss.Color("51")),            // bright cyan
		title:  lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true), // bright white bold
		rule:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),            // bright black
		dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		value:  lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
		rank:   lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
		info:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")), // green
		warn:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")), // yellow
		errSty: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		fatal:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		notice: lipgloss.NewStyle().Foreground(lipgloss.Color("12")), // bright blue
		ok:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		perf:   lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
		bar:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	}
}

// TextFormatter renders the report as colorized, human-readable sections.
type TextFormatter struct {
	cfg    *config.Config
	styles styleSet
}

// NewTextFormatter creates a text formatter. A nil config means defaults.
func NewTextFormatter(cfg *config.Config) *TextFormatter {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &TextFormatter{
		cfg:    cfg,
		styles: newStyles(cfg.NoColor),
	}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the full report: header, summary, performance, top
// endpoints, error analysis, slowest requests, footer.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	st := report.Stats

	f.printHeader(w)
	f.printSummary(w, st)
	f.printPerformance(w, st)
	f.printTopEndpoints(w, st)
	f.printErrorAnalysis(w, st)
	f.printSlowestRequests(w, st)
	f.printFooter(w)

	return nil
}

func (f *TextFormatter) printHeader(w io.Writer) {
	s := f.styles
	fmt.Fprintln(w)
	fmt.Fprintln(w, s.frame.Render("╔"+strings.Repeat("═", reportWidth-2)+"╗"))
	fmt.Fprintln(w, s.frame.Render("║          LOG ANALYSIS REPORT"+strings.Repeat(" ", reportWidth-31)+"║"))
	fmt.Fprintln(w, s.frame.Render("╚"+strings.Repeat("═", reportWidth-2)+"╝"))
}

func (f *TextFormatter) printFooter(w io.Writer) {
	fmt.Fprintln(w, f.styles.frame.Render(strings.Repeat("═", reportWidth)))
	fmt.Fprintln(w)
}

func (f *TextFormatter) rule(w io.Writer) {
	fmt.Fprintln(w, f.styles.rule.Render(strings.Repeat("─", reportWidth)))
}

func (f *TextFormatter) printSummary(w io.Writer, st *stats.Stats) {
	s := f.styles

	fmt.Fprintf(w, "\n%s\n", s.title.Render("📊 SUMMARY STATISTICS"))
	f.rule(w)

	fmt.Fprintf(w, "%-30s %s\n", "Total Requests:",
		s.value.Render(fmt.Sprintf("%10d", st.TotalRequests)))

	fmt.Fprintf(w, "\n%s\n", "Status Breakdown:")
	f.printLevelLine(w, s.info, "INFO", st.InfoCount, st.LevelPercent(st.InfoCount))
	f.printLevelLine(w, s.warn, "WARNING", st.WarningCount, st.LevelPercent(st.WarningCount))
	f.printLevelLine(w, s.errSty, "ERROR", st.ErrorCount, st.LevelPercent(st.ErrorCount))

	errRate := st.ErrorRate()
	switch {
	case errRate > f.cfg.ErrorRateHigh:
		fmt.Fprintf(w, "\n  %s\n",
			s.fatal.Render(fmt.Sprintf("⚠ High error rate detected: %.1f%%", errRate)))
	case errRate > f.cfg.ErrorRateModerate:
		fmt.Fprintf(w, "\n  %s\n",
			s.notice.Render(fmt.Sprintf("ℹ Moderate error rate: %.1f%%", errRate)))
	}
}

func (f *TextFormatter) printLevelLine(w io.Writer, style lipgloss.Style, name string, count int, pct float64) {
	fmt.Fprintf(w, "  %s %s  %s\n",
		style.Render(fmt.Sprintf("%-26s", name)),
		style.Render(fmt.Sprintf("%8d", count)),
		f.styles.dim.Render(fmt.Sprintf("(%.1f%%)", pct)))
}

func (f *TextFormatter) printPerformance(w io.Writer, st *stats.Stats) {
	s := f.styles

	fmt.Fprintf(w, "\n%s\n", s.title.Render("⚡ PERFORMANCE METRICS"))
	f.rule(w)

	fmt.Fprintf(w, "%-30s %s\n", "Average Response Time:",
		s.perf.Render(fmt.Sprintf("%10.2fms", st.AvgResponseTime)))

	percentiles := []struct {
		label string
		p     float64
		style lipgloss.Style
	}{
		{"P50 Response Time:", 0.50, s.info},
		{"P95 Response Time:", 0.95, s.warn},
		{"P99 Response Time:", 0.99, s.errSty},
	}

	for _, pc := range percentiles {
		v, ok := st.Percentile(pc.p)
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%-30s %s\n", pc.label,
			pc.style.Render(fmt.Sprintf("%10.2fms", v)))
	}
}

func (f *TextFormatter) printTopEndpoints(w io.Writer, st *stats.Stats) {
	s := f.styles

	fmt.Fprintf(w, "\n%s\n",
		s.title.Render(fmt.Sprintf("🔝 TOP %d ENDPOINTS BY REQUEST COUNT", f.cfg.TopEndpoints)))
	f.rule(w)

	fmt.Fprintln(w, s.rule.Render(fmt.Sprintf("%-4s %-40s %10s", "#", "Endpoint", "Count")))
	f.rule(w)

	for i, ec := range st.TopEndpoints(f.cfg.TopEndpoints) {
		barWidth := 0
		if st.TotalRequests > 0 {
			barWidth = ec.Count * f.cfg.BarWidth / st.TotalRequests
		}
		fmt.Fprintf(w, "%s %-40s %s %s\n",
			s.rank.Render(fmt.Sprintf("%-4d", i+1)),
			truncateEndpoint(ec.Endpoint, 40),
			s.value.Render(fmt.Sprintf("%10d", ec.Count)),
			s.bar.Render(strings.Repeat("█", barWidth)))
	}
}

func (f *TextFormatter) printErrorAnalysis(w io.Writer, st *stats.Stats) {
	s := f.styles

	if len(st.ErrorsByEndpoint) == 0 {
		fmt.Fprintf(w, "\n%s\n", s.ok.Render("✅ ERROR ANALYSIS: No errors detected"))
		return
	}

	fmt.Fprintf(w, "\n%s\n", s.title.Render("🚨 ERROR ANALYSIS"))
	f.rule(w)

	fmt.Fprintln(w, s.rule.Render(fmt.Sprintf("%-4s %-40s %10s", "#", "Endpoint", "Errors")))
	f.rule(w)

	for i, ec := range st.TopErrors(f.cfg.TopEndpoints) {
		fmt.Fprintf(w, "%s %-40s %s\n",
			s.rank.Render(fmt.Sprintf("%-4d", i+1)),
			truncateEndpoint(ec.Endpoint, 40),
			s.errSty.Render(fmt.Sprintf("%10d", ec.Count)))
	}
}

func (f *TextFormatter) printSlowestRequests(w io.Writer, st *stats.Stats) {
	s := f.styles

	fmt.Fprintf(w, "\n%s\n",
		s.title.Render(fmt.Sprintf("🐌 TOP %d SLOWEST REQUESTS", f.cfg.SlowestRequests)))
	f.rule(w)

	fmt.Fprintln(w, s.rule.Render(fmt.Sprintf("%-4s %-35s %-10s %10s", "#", "Endpoint", "Method", "Time")))
	f.rule(w)

	top := st.SlowestRequests
	if len(top) > f.cfg.SlowestRequests {
		top = top[:f.cfg.SlowestRequests]
	}

	for i, rec := range top {
		if rec.ResponseTime == nil {
			continue
		}
		rt := *rec.ResponseTime

		endpoint := "N/A"
		if rec.Endpoint != nil {
			endpoint = *rec.Endpoint
		}
		method := "N/A"
		if rec.Method != nil {
			method = rec.Method.String()
		}

		timeStyle := s.value
		switch {
		case rt > f.cfg.VerySlowThresholdMs:
			timeStyle = s.errSty
		case rt > f.cfg.SlowThresholdMs:
			timeStyle = s.warn
		}

		fmt.Fprintf(w, "%s %-35s %-10s %s\n",
			s.rank.Render(fmt.Sprintf("%-4d", i+1)),
			truncateEndpoint(endpoint, f.cfg.EndpointWidth),
			method,
			timeStyle.Render(fmt.Sprintf("%10.2fms", rt)))
	}
}

// truncateEndpoint shortens a path so table columns stay aligned. Cuts on
// rune boundaries so multi-byte paths stay valid UTF-8.
func truncateEndpoint(endpoint string, maxLen int) string {
	runes := []rune(endpoint)
	if len(runes) <= maxLen {
		return endpoint
	}
	return string(runes[:maxLen-3]) + "..."
}
