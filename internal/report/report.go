package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/qalint/internal/core/domain"
)

// Printer writes reports to an output and an error stream.
type Printer struct {
	out    io.Writer
	errOut io.Writer
	styles styles
}

type styles struct {
	path       lipgloss.Style
	location   lipgloss.Style
	structural lipgloss.Style
	schema     lipgloss.Style
	message    lipgloss.Style
	success    lipgloss.Style
	summary    lipgloss.Style
}

// NewPrinter creates a printer. Success lines go to out, violations and
// summaries go to errOut.
func NewPrinter(out, errOut io.Writer, mode domain.ColorMode) *Printer {
	return &Printer{
		out:    out,
		errOut: errOut,
		styles: newStyles(errOut, ColorEnabled(mode, errOut)),
	}
}

func newStyles(w io.Writer, color bool) styles {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return styles{
		path:       r.NewStyle().Bold(true),
		location:   r.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		structural: r.NewStyle().Foreground(lipgloss.Color("#F38BA8")).Bold(true),
		schema:     r.NewStyle().Foreground(lipgloss.Color("#F9E2AF")),
		message:    r.NewStyle(),
		success:    r.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
		summary:    r.NewStyle().Foreground(lipgloss.Color("#F38BA8")),
	}
}

// ColorEnabled resolves a colour mode against the destination writer.
// Auto enables colour only for terminals, and NO_COLOR always wins.
func ColorEnabled(mode domain.ColorMode, w io.Writer) bool {
	switch mode {
	case domain.ColorAlways:
		return true
	case domain.ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Print writes reports in the given format.
// JSON and YAML always emit a list so single and batch runs share a shape.
func (p *Printer) Print(reports []*domain.Report, format domain.OutputFormat) error {
	switch format {
	case domain.OutputJSON:
		return p.printJSON(reports)
	case domain.OutputYAML:
		return p.printYAML(reports)
	case domain.OutputText, "":
		for _, r := range reports {
			p.printText(r)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown output format %q", domain.ErrInvalidInput, format)
	}
}

func (p *Printer) printText(r *domain.Report) {
	if r.OK() {
		fmt.Fprintf(p.out, "%s %s: %d entries in %d sections, no violations\n",
			p.styles.success.Render("✓"), p.styles.path.Render(r.Source), r.Entries, r.Sections)
		return
	}

	for i := range r.Violations {
		fmt.Fprintln(p.errOut, p.line(r.Source, &r.Violations[i]))
	}
	fmt.Fprintln(p.out, p.styles.summary.Render(Summary(r)))
}

// line formats one violation as "path:line: entry N: rule: message".
func (p *Printer) line(source string, v *domain.Violation) string {
	loc := p.styles.path.Render(source)
	if v.Line > 0 {
		loc += p.styles.location.Render(fmt.Sprintf(":%d", v.Line))
	}
	entry := ""
	if v.Ordinal > 0 {
		entry = fmt.Sprintf("entry %d: ", v.Ordinal)
	}
	rule := p.styles.schema
	if v.Kind == domain.KindStructural {
		rule = p.styles.structural
	}
	return fmt.Sprintf("%s: %s%s: %s", loc, entry, rule.Render(v.Rule.String()), p.styles.message.Render(v.Message))
}

// Line formats a violation without colour.
func Line(source string, v domain.Violation) string {
	loc := source
	if v.Line > 0 {
		loc = fmt.Sprintf("%s:%d", source, v.Line)
	}
	entry := ""
	if v.Ordinal > 0 {
		entry = fmt.Sprintf("entry %d: ", v.Ordinal)
	}
	return fmt.Sprintf("%s: %s%s: %s", loc, entry, v.Rule, v.Message)
}

// Summary returns a one-line count of a report's violations.
func Summary(r *domain.Report) string {
	n := len(r.Violations)
	noun := "violations"
	if n == 1 {
		noun = "violation"
	}
	return fmt.Sprintf("%s: %d %s (%d structural, %d schema)",
		r.Source, n, noun, r.CountByKind(domain.KindStructural), r.CountByKind(domain.KindSchema))
}

func (p *Printer) printJSON(reports []*domain.Report) error {
	if reports == nil {
		reports = []*domain.Report{}
	}
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(reports); err != nil {
		return fmt.Errorf("encoding json report: %w", err)
	}
	return nil
}

func (p *Printer) printYAML(reports []*domain.Report) error {
	if reports == nil {
		reports = []*domain.Report{}
	}
	enc := yaml.NewEncoder(p.out)
	enc.SetIndent(2)
	if err := enc.Encode(reports); err != nil {
		return fmt.Errorf("encoding yaml report: %w", err)
	}
	return enc.Close()
}
