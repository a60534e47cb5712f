package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"work-timer/internal/api"
	"work-timer/internal/config"
	"work-timer/internal/domain"
	"work-timer/internal/services"
)

// Palette used by the renderer.
var (
	colorGreen  = lipgloss.Color("#8ec07c")
	colorYellow = lipgloss.Color("#fabd2f")
	colorRed    = lipgloss.Color("#fb4934")
	colorDim    = lipgloss.Color("#928374")
	colorHeader = lipgloss.Color("#fe8019")
)

// Style classes. Status classes come from TimerStatus.CSSClass.
const (
	classHeader   = "header"
	classDim      = "dim"
	classComplete = "complete"
	classOvertime = "overtime"
)

const progressWidth = 20

// Renderer writes human readable output, styled only on a color terminal.
type Renderer struct {
	out        io.Writer
	color      bool
	timeFormat string
	styles     map[string]lipgloss.Style
}

// NewRenderer creates a renderer for out. Color is used when enabled in the
// display config and out is a terminal.
func NewRenderer(out io.Writer, display config.DisplayConfig) *Renderer {
	lg := lipgloss.NewRenderer(out)
	timeFormat := display.TimeFormat
	if timeFormat == "" {
		timeFormat = time.TimeOnly
	}
	return &Renderer{
		out:        out,
		color:      display.Color && IsTerminal(out),
		timeFormat: timeFormat,
		styles: map[string]lipgloss.Style{
			domain.StatusRunning.CSSClass(): lg.NewStyle().Foreground(colorGreen).Bold(true),
			domain.StatusPaused.CSSClass():  lg.NewStyle().Foreground(colorYellow).Bold(true),
			domain.StatusStopped.CSSClass(): lg.NewStyle().Foreground(colorDim),
			classHeader:                     lg.NewStyle().Foreground(colorHeader).Bold(true),
			classDim:                        lg.NewStyle().Foreground(colorDim),
			classComplete:                   lg.NewStyle().Foreground(colorGreen),
			classOvertime:                   lg.NewStyle().Foreground(colorRed),
		},
	}
}

// IsTerminal reports whether w is a terminal file descriptor.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (r *Renderer) style(class, text string) string {
	if !r.color {
		return text
	}
	style, ok := r.styles[class]
	if !ok {
		return text
	}
	return style.Render(text)
}

func (r *Renderer) clock(t time.Time) string {
	return t.In(time.Local).Format(r.timeFormat)
}

// Printf writes an unstyled line.
func (r *Renderer) Printf(format string, args ...interface{}) {
	fmt.Fprintf(r.out, format, args...)
}

// Transition prints the one-line outcome of a timer command. A zero at
// means the transition happened at status.AsOf.
func (r *Renderer) Transition(message string, at time.Time, status *api.DayStatus) {
	day := status.Day
	if at.IsZero() {
		at = status.AsOf
	}
	fmt.Fprintf(r.out, "%s at %s [%s] worked %s, effective %s\n",
		message,
		r.clock(at),
		r.style(day.Status().CSSClass(), day.Status().DisplayText()),
		status.Metrics.TotalWorkTime,
		status.Metrics.EffectiveWorkTime)
	if day.PauseDeductionApplied() {
		fmt.Fprintln(r.out, r.style(classDim, "Pause deduction applied"))
	}
}

// Status prints the full status block of a day.
func (r *Renderer) Status(status *api.DayStatus) {
	day := status.Day
	m := status.Metrics

	fmt.Fprintf(r.out, "%s  %s\n", r.style(classHeader, day.Date().Format()),
		r.style(day.Status().CSSClass(), day.Status().DisplayText()))
	if !day.HasActivity() {
		fmt.Fprintln(r.out, r.style(classDim, "No work recorded"))
	}

	for i, s := range day.Sessions() {
		end, _ := s.EndTime()
		fmt.Fprintf(r.out, "  %2d. %s - %s  %s\n", i+1, r.clock(s.StartTime()), r.clock(end), s.Duration())
	}
	if current, ok := day.CurrentSession(); ok {
		fmt.Fprintf(r.out, "  %2d. %s - %s  %s\n", day.SessionCount(), r.clock(current.StartTime()),
			r.style(day.Status().CSSClass(), "running"), day.CurrentSessionDuration(status.AsOf))
	}

	rows := [][2]string{
		{"Worked", m.TotalWorkTime.String()},
		{"Pauses", m.TotalPauseTime.String()},
		{"Deduction", r.deductionText(status)},
		{"Effective", m.EffectiveWorkTime.String()},
		{"Remaining", m.RemainingTime.String()},
	}
	if !m.Overtime.IsZero() {
		rows = append(rows, [2]string{"Overtime", r.style(classOvertime, m.Overtime.String())})
	}
	rows = append(rows, [2]string{"Progress", r.progress(status.Progress, m.IsComplete)})

	for _, row := range rows {
		fmt.Fprintf(r.out, "  %-10s %s\n", row[0]+":", row[1])
	}
	if !day.PauseDeductionApplied() && status.Deduction.Reason != "" {
		fmt.Fprintf(r.out, "  %s\n", r.style(classDim, status.Deduction.Reason))
	}
}

func (r *Renderer) deductionText(status *api.DayStatus) string {
	amount := status.Metrics.PauseDeduction.String()
	switch {
	case status.Day.PauseDeductionApplied():
		return amount + " (applied)"
	case status.Deduction.ShouldApplyDeduction:
		return amount + " (pending)"
	default:
		return amount
	}
}

func (r *Renderer) progress(pct float64, complete bool) string {
	filled := int(pct / 100 * progressWidth)
	if filled > progressWidth {
		filled = progressWidth
	}
	bar := strings.Repeat("#", filled) + strings.Repeat(".", progressWidth-filled)
	text := fmt.Sprintf("[%s] %5.1f%%", bar, pct)
	if complete {
		return r.style(classComplete, text)
	}
	return text
}

// Summary prints one row per day followed by period totals.
func (r *Renderer) Summary(summary *services.PeriodSummary) {
	period := summary.Period
	fmt.Fprintln(r.out, r.style(classHeader, fmt.Sprintf("%s .. %s", period.From, period.To)))
	if len(summary.Days) == 0 {
		fmt.Fprintln(r.out, "No work days found")
		return
	}

	headers := []string{"Date", "Status", "Sessions", "Worked", "Deduction", "Effective", "Overtime"}
	rows := make([][]string, 0, len(summary.Days))
	for _, report := range summary.Days {
		day := report.Day
		overtime := ""
		if !report.Metrics.Overtime.IsZero() {
			overtime = r.style(classOvertime, report.Metrics.Overtime.String())
		}
		rows = append(rows, []string{
			day.Date().ToISOString(),
			r.style(day.Status().CSSClass(), day.Status().DisplayText()),
			fmt.Sprintf("%d", day.SessionCount()),
			report.Metrics.TotalWorkTime.String(),
			report.Metrics.PauseDeduction.String(),
			report.Metrics.EffectiveWorkTime.String(),
			overtime,
		})
	}
	fmt.Fprint(r.out, r.table(headers, rows))

	fmt.Fprintf(r.out, "Days: %d (complete: %d)\n", len(summary.Days), summary.CompleteDays)
	fmt.Fprintf(r.out, "Total worked: %s  effective: %s  overtime: %s\n",
		summary.TotalWorkTime, summary.TotalEffective, summary.TotalOvertime)
	fmt.Fprintf(r.out, "Average effective: %s\n", summary.AverageEffective)
}

// table pads columns by visible width so styled cells stay aligned.
func (r *Renderer) table(headers []string, rows [][]string) string {
	const colGap = 2
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(headers) && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string, style string) {
		for i, cell := range cells {
			text := cell
			if style != "" {
				text = r.style(style, cell)
			}
			b.WriteString(text)
			if i < len(cells)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)+colGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, classHeader)
	separators := make([]string, len(widths))
	for i, w := range widths {
		separators[i] = strings.Repeat("-", w)
	}
	writeRow(separators, classDim)
	for _, row := range rows {
		writeRow(row, "")
	}
	return b.String()
}
