package model

import (
	"log/slog"

	"github.com/gdamore/tcell/v2"
)

// cellRune is drawn for every living cell
const cellRune = tcell.RuneDiamond

// palette colors cells by their birth generation
var palette = [...]tcell.Color{
	tcell.ColorBlue,
	tcell.ColorAqua,
	tcell.ColorGreen,
	tcell.ColorFuchsia,
	tcell.ColorRed,
	tcell.ColorWhite,
	tcell.ColorYellow,
}

// Renderer draws one population snapshot
type Renderer interface {
	Display(pop Population, generation int, status string)
}

// CellStyle returns the style of a cell born at generation gen
func CellStyle(gen int) tcell.Style {
	idx := gen % len(palette)
	if idx < 0 {
		idx += len(palette)
	}
	return tcell.StyleDefault.Foreground(palette[idx]).Background(tcell.ColorBlack)
}

// TerminalRenderer implements terminal rendering on a tcell screen
type TerminalRenderer struct {
	screen    tcell.Screen
	statusRow int
}

// NewTerminalRenderer creates a renderer drawing on an initialized screen. The
// status line goes on statusRow, normally the first row below the domain.
func NewTerminalRenderer(screen tcell.Screen, statusRow int) *TerminalRenderer {
	return &TerminalRenderer{screen: screen, statusRow: statusRow}
}

// Display renders the population and the status line
func (r *TerminalRenderer) Display(pop Population, _ int, status string) {
	r.screen.Clear()

	cols, rows := r.screen.Size()
	for pos, cell := range pop {
		if pos.X >= cols || pos.Y >= rows {
			continue
		}
		r.screen.SetContent(pos.X, pos.Y, cellRune, nil, CellStyle(cell.Gen))
	}

	// domain taller than the screen: the last row is given to the status line
	if row := min(r.statusRow, rows-1); row >= 0 {
		r.drawText(0, row, status)
	}
	r.screen.Show()
}

func (r *TerminalRenderer) drawText(x, y int, text string) {
	cols, _ := r.screen.Size()
	for _, ch := range text {
		if x >= cols {
			return
		}
		r.screen.SetContent(x, y, ch, nil, tcell.StyleDefault)
		x++
	}
}

// LogRenderer renders headless runs as structured log records
type LogRenderer struct {
	logger *slog.Logger
	every  int
}

// NewLogRenderer logs one record every `every` generations (every generation when every <= 1)
func NewLogRenderer(logger *slog.Logger, every int) *LogRenderer {
	return &LogRenderer{logger: logger, every: max(every, 1)}
}

// Display logs a summary of the population
func (r *LogRenderer) Display(pop Population, generation int, status string) {
	if generation%r.every != 0 {
		return
	}
	r.logger.Info("generation",
		"generation", generation,
		"population", len(pop),
		"status", status,
	)
}
