// Package canvas is a character-cell drawing surface for text renderings of
// routed scenes.
package canvas

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
)

var (
	ErrOutOfBounds = errors.New("position out of bounds")
	ErrInvalidSize = errors.New("invalid canvas size")
)

// Cell addresses one character cell.
type Cell struct {
	X, Y int
}

// Matrix is a rune grid where overlapping lines merge into junctions and
// every cell may carry a colour.
//
// Origin (0,0) is top-left; X grows rightward, Y downward. Wide runes occupy
// two cells, the second holding 0. A Matrix is not safe for concurrent writes.
type Matrix struct {
	cells  [][]rune
	colors [][]string
	width  int
	height int
	merger *CharacterMerger
}

// New creates a blank canvas.
func New(width, height int) (*Matrix, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	cells := make([][]rune, height)
	colors := make([][]string, height)
	for y := range cells {
		cells[y] = make([]rune, width)
		for x := range cells[y] {
			cells[y][x] = ' '
		}
		colors[y] = make([]string, width)
	}

	return &Matrix{cells: cells, colors: colors, width: width, height: height, merger: NewCharacterMerger()}, nil
}

// Size returns the width and height of the canvas.
func (m *Matrix) Size() (width, height int) {
	return m.width, m.height
}

func (m *Matrix) inBounds(c Cell) bool {
	return c.X >= 0 && c.X < m.width && c.Y >= 0 && c.Y < m.height
}

// Get returns the rune at c, or a space outside the canvas.
func (m *Matrix) Get(c Cell) rune {
	if !m.inBounds(c) {
		return ' '
	}
	return m.cells[c.Y][c.X]
}

// Color returns the colour of c as #rrggbb, or "" when unset.
func (m *Matrix) Color(c Cell) string {
	if !m.inBounds(c) {
		return ""
	}
	return m.colors[c.Y][c.X]
}

// Set merges r into the cell.
func (m *Matrix) Set(c Cell, r rune) error {
	return m.SetWithColor(c, r, "")
}

// SetWithColor merges r into the cell and, when color is non-empty, colours it.
func (m *Matrix) SetWithColor(c Cell, r rune, color string) error {
	if !m.inBounds(c) {
		return ErrOutOfBounds
	}
	m.cells[c.Y][c.X] = m.merger.Merge(m.cells[c.Y][c.X], r)
	if color != "" {
		m.colors[c.Y][c.X] = color
	}
	return nil
}

// DrawBox draws a rectangle outline with square corners, clipped to the canvas.
func (m *Matrix) DrawBox(x, y, width, height int) error {
	if width < 2 || height < 2 {
		return fmt.Errorf("box %dx%d too small", width, height)
	}
	right, bottom := x+width-1, y+height-1

	if width > 2 {
		m.DrawHorizontal(x+1, right-1, y, "")
		m.DrawHorizontal(x+1, right-1, bottom, "")
	}
	if height > 2 {
		m.DrawVertical(x, y+1, bottom-1, "")
		m.DrawVertical(right, y+1, bottom-1, "")
	}

	m.Set(Cell{x, y}, TopLeft)
	m.Set(Cell{right, y}, TopRight)
	m.Set(Cell{x, bottom}, BottomLeft)
	m.Set(Cell{right, bottom}, BottomRight)
	return nil
}

// DrawHorizontal draws a horizontal line on row y, clipped to the canvas.
func (m *Matrix) DrawHorizontal(x1, x2, y int, color string) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := max(x1, 0); x <= min(x2, m.width-1); x++ {
		m.SetWithColor(Cell{x, y}, Horizontal, color)
	}
}

// DrawVertical draws a vertical line in column x, clipped to the canvas.
func (m *Matrix) DrawVertical(x, y1, y2 int, color string) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := max(y1, 0); y <= min(y2, m.height-1); y++ {
		m.SetWithColor(Cell{x, y}, Vertical, color)
	}
}

// DrawPath draws an orthogonal polyline with rounded corners. Diagonal
// segments are drawn as a horizontal run followed by a vertical one.
func (m *Matrix) DrawPath(cells []Cell, color string) error {
	if len(cells) < 2 {
		return fmt.Errorf("path must have at least 2 points")
	}

	cells = orthogonalize(cells)
	for i := 1; i < len(cells); i++ {
		a, b := cells[i-1], cells[i]
		if a.Y == b.Y {
			m.DrawHorizontal(a.X, b.X, a.Y, color)
		} else {
			m.DrawVertical(a.X, a.Y, b.Y, color)
		}
	}

	for i := 1; i < len(cells)-1; i++ {
		prev, curr, next := cells[i-1], cells[i], cells[i+1]
		if m.inBounds(curr) && curr != prev && curr != next {
			m.cells[curr.Y][curr.X] = selectCorner(prev, curr, next)
		}
	}
	return nil
}

// orthogonalize splits diagonal steps and drops repeated cells.
func orthogonalize(cells []Cell) []Cell {
	out := []Cell{cells[0]}
	for _, c := range cells[1:] {
		last := out[len(out)-1]
		if c == last {
			continue
		}
		if c.X != last.X && c.Y != last.Y {
			out = append(out, Cell{c.X, last.Y})
		}
		out = append(out, c)
	}
	return out
}

// MeasureText returns the display width of text in cells.
func MeasureText(text string) int {
	return runewidth.StringWidth(text)
}

// DrawText writes text starting at (x, y). Wide runes take two cells and
// zero-width runes are skipped; text past the right edge is cut.
func (m *Matrix) DrawText(x, y int, text string) error {
	if y < 0 || y >= m.height {
		return ErrOutOfBounds
	}

	cx := x
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if cx+w > m.width {
			break
		}
		if cx >= 0 {
			m.cells[y][cx] = r
			if w == 2 {
				m.cells[y][cx+1] = 0
			}
		}
		cx += w
	}
	return nil
}

// String returns the canvas as plain text, one line per row.
func (m *Matrix) String() string {
	var sb strings.Builder
	sb.Grow(m.height * (m.width + 1))
	for y, row := range m.cells {
		for _, r := range row {
			if r == 0 {
				continue
			}
			sb.WriteRune(r)
		}
		if y < m.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// ColoredString returns the canvas with 24-bit ANSI colour escapes around
// coloured runs.
func (m *Matrix) ColoredString() string {
	var sb strings.Builder
	for y, row := range m.cells {
		current := ""
		for x, r := range row {
			if color := m.colors[y][x]; color != current {
				if current != "" {
					sb.WriteString(colorReset)
				}
				if color != "" {
					sb.WriteString(ansiForeground(color))
				}
				current = color
			}
			if r != 0 {
				sb.WriteRune(r)
			}
		}
		if current != "" {
			sb.WriteString(colorReset)
		}
		if y < m.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

const colorReset = "\033[0m"

// ansiForeground returns the truecolor escape for a #rrggbb colour. Colours
// that do not parse are left unstyled.
func ansiForeground(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return ""
	}
	r, g, b := c.RGB255()
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", r, g, b)
}
