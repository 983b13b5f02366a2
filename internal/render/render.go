package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/glup3/DotsOfLife/internal/lifetime"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	dot        = "●"
	filledBlue = lipgloss.Color("27")
	emptyGray  = lipgloss.Color("250")
)

type Renderer struct {
	printer *message.Printer
	heading lipgloss.Style
	value   lipgloss.Style
	filled  lipgloss.Style
	empty   lipgloss.Style
}

// NewRenderer draws with colors unless plain is set.
func NewRenderer(plain bool) *Renderer {
	r := &Renderer{
		printer: message.NewPrinter(language.English),
		heading: lipgloss.NewStyle().Bold(true),
		value:   lipgloss.NewStyle().Bold(true),
		filled:  lipgloss.NewStyle().Foreground(filledBlue),
		empty:   lipgloss.NewStyle().Foreground(emptyGray),
	}

	if plain {
		r.heading = lipgloss.NewStyle()
		r.value = lipgloss.NewStyle()
		r.filled = lipgloss.NewStyle()
		r.empty = lipgloss.NewStyle()
	}

	return r
}

// FormatCount uses thousands separators, e.g. 12,419.
func (r *Renderer) FormatCount(n int) string {
	return r.printer.Sprintf("%d", n)
}

func (r *Renderer) FormatDays(days int) string {
	return r.FormatCount(days)
}

// FormatWeeks renders whole weeks and remaining days as 1,774.1.
func (r *Renderer) FormatWeeks(weeks lifetime.Split) string {
	return r.printer.Sprintf("%d.%d", weeks.Whole, weeks.RemainderDays)
}

// FormatYears renders whole years and remaining days as 34.120.
func (r *Renderer) FormatYears(years lifetime.Split) string {
	return fmt.Sprintf("%d.%d", years.Whole, years.RemainderDays)
}

func (r *Renderer) Value(unit lifetime.Unit, result lifetime.ElapsedResult) string {
	switch unit {
	case lifetime.UnitDays:
		return r.FormatDays(result.DaysElapsed)
	case lifetime.UnitWeeks:
		return r.FormatWeeks(result.Weeks)
	case lifetime.UnitYears:
		return r.FormatYears(result.Years)
	default:
		return ""
	}
}

func (r *Renderer) Summary(w io.Writer, result lifetime.ElapsedResult) error {
	var b strings.Builder

	b.WriteString(r.heading.Render("Today is") + "\n")
	b.WriteString(result.DayName() + "\n")
	b.WriteString(result.FormattedDate() + "\n\n")
	b.WriteString(r.heading.Render("You have been alive for") + "\n")

	for _, unit := range lifetime.Units {
		fmt.Fprintf(&b, "%s %s\n", r.value.Render(r.Value(unit, result)), unit.Title())
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Grid draws one line per grid row, filled cells first in index order.
func (r *Renderer) Grid(w io.Writer, grid lifetime.ProgressGrid) error {
	var b strings.Builder

	for row := 0; row < grid.Rows(); row++ {
		start := row * grid.Columns
		end := min(start+grid.Columns, grid.TotalCells)
		filled := min(max(grid.FilledCells-start, 0), end-start)

		if filled > 0 {
			b.WriteString(r.filled.Render(strings.Repeat(dot, filled)))
		}
		if rest := end - start - filled; rest > 0 {
			b.WriteString(r.empty.Render(strings.Repeat(dot, rest)))
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (r *Renderer) Prompt(w io.Writer, command string) error {
	_, err := fmt.Fprintf(w, "%s\nRun `%s set YYYY-MM-DD` or set REFERENCE_DATE.\n",
		r.heading.Render("Enter Your Date of Birth"), command)
	return err
}
