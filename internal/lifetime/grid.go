package lifetime

import (
	"errors"
	"fmt"
	"strings"
)

type Unit string

const (
	UnitDays  Unit = "days"
	UnitWeeks Unit = "weeks"
	UnitYears Unit = "years"
)

var Units = [...]Unit{UnitDays, UnitWeeks, UnitYears}

var ErrUnknownUnit = errors.New("unknown unit")

type unitLayout struct {
	cellsPerYear int
	columns      int
	cellSize     string
}

var layouts = map[Unit]unitLayout{
	UnitDays:  {cellsPerYear: 365, columns: 365, cellSize: "3px"},
	UnitWeeks: {cellsPerYear: 52, columns: 52, cellSize: "4px"},
	UnitYears: {cellsPerYear: 1, columns: 10, cellSize: "20px"},
}

func ParseUnit(value string) (Unit, error) {
	unit := Unit(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := layouts[unit]; !ok {
		return "", fmt.Errorf("%w %q, use days, weeks or years", ErrUnknownUnit, value)
	}

	return unit, nil
}

func (u Unit) Title() string {
	if u == "" {
		return ""
	}
	return strings.ToUpper(string(u[:1])) + string(u[1:])
}

// ProgressGrid describes which cells of a fixed size grid are filled.
// Cells [0, FilledCells) are filled, the rest are empty.
type ProgressGrid struct {
	Unit        Unit
	TotalCells  int
	FilledCells int
	Columns     int
	CellSize    string
}

// BuildGrid sizes the grid to the horizon and clamps elapsed into it.
func BuildGrid(unit Unit, elapsed int, lifeExpectancyYears int) ProgressGrid {
	layout, ok := layouts[unit]
	if !ok {
		return ProgressGrid{Unit: unit}
	}

	total := max(lifeExpectancyYears*layout.cellsPerYear, 0)

	return ProgressGrid{
		Unit:        unit,
		TotalCells:  total,
		FilledCells: min(max(elapsed, 0), total),
		Columns:     layout.columns,
		CellSize:    layout.cellSize,
	}
}

// Rows rounds up so a partial last row still gets drawn.
func (g ProgressGrid) Rows() int {
	if g.Columns == 0 {
		return 0
	}
	return (g.TotalCells + g.Columns - 1) / g.Columns
}

func (g ProgressGrid) Filled(index int) bool {
	return index >= 0 && index < g.FilledCells
}

func (g ProgressGrid) Cells() []bool {
	cells := make([]bool, g.TotalCells)
	for i := 0; i < g.FilledCells; i++ {
		cells[i] = true
	}
	return cells
}

type Mapper struct {
	cfg Config
}

func NewMapper(cfg Config) *Mapper {
	return &Mapper{cfg: cfg}
}

// Grid maps the whole part of the result field matching unit onto a grid.
func (m *Mapper) Grid(unit Unit, result ElapsedResult) (ProgressGrid, error) {
	count, err := ElapsedCount(unit, result)
	if err != nil {
		return ProgressGrid{}, err
	}

	return BuildGrid(unit, count, m.cfg.LifeExpectancyYears), nil
}

func ElapsedCount(unit Unit, result ElapsedResult) (int, error) {
	switch unit {
	case UnitDays:
		return result.DaysElapsed, nil
	case UnitWeeks:
		return result.Weeks.Whole, nil
	case UnitYears:
		return result.Years.Whole, nil
	default:
		return 0, fmt.Errorf("%w %q", ErrUnknownUnit, unit)
	}
}
