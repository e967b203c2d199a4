package tui

import (
	"math"
	"strings"

	xansi "github.com/charmbracelet/x/ansi"

	"github.com/squorange/focus-tools-sub000/internal/orbit"
)

// Point is a position in layout units relative to the task center. Y grows
// downward, so an angle of -90 degrees points straight up.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Project converts a polar subtask position to cartesian layout units.
func Project(angleDeg, radius float64) Point {
	rad := angleDeg * math.Pi / 180
	return Point{X: round2(radius * math.Cos(rad)), Y: round2(radius * math.Sin(rad))}
}

func round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}

// cellKind doubles as draw priority: a cell only takes a higher kind.
type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellBelt
	cellLabel
	cellDone
	cellActive
	cellSelected
	cellCenter
)

const (
	glyphCenter    = '◉'
	glyphActive    = '●'
	glyphDone      = '✓'
	glyphBelt      = '·'
	glyphCelebrate = '✦'

	maxLabelWidth = 24
)

type cell struct {
	r    rune // 0 marks the right half of a wide rune
	kind cellKind
}

type RenderOptions struct {
	Width  int
	Height int
	// Selected is a subtask id drawn highlighted.
	Selected string
	Labels   bool
}

// RenderOrbit draws a snapshot on a Width x Height character grid: the task
// at the center, the belt as a dotted ring and each subtask at its
// assigned angle and radius. Subtasks missing either are skipped.
func RenderOrbit(snap orbit.Snapshot, opts RenderOptions) string {
	c := newCanvas(opts.Width, opts.Height, extent(snap))

	switch snap.Belt.State {
	case orbit.BeltRinged:
		c.circle(snap.BeltRadius, glyphBelt)
	case orbit.BeltCelebrating:
		c.circle(snap.BeltRadius, glyphCelebrate)
	}

	type placed struct {
		col, row int
		left     bool
		title    string
	}
	var marks []placed
	for _, pass := range []cellKind{cellDone, cellActive, cellSelected} {
		for _, st := range snap.Subtasks {
			if st.AssignedAngle == nil || st.AssignedRadius == nil {
				continue
			}
			kind, glyph := cellActive, glyphActive
			switch {
			case st.ID == opts.Selected && opts.Selected != "":
				kind = cellSelected
				if st.Completed {
					glyph = glyphDone
				}
			case st.Completed:
				kind, glyph = cellDone, glyphDone
			}
			if kind != pass {
				continue
			}
			p := Project(*st.AssignedAngle, *st.AssignedRadius)
			col, row := c.toCell(p)
			c.set(col, row, glyph, kind)
			marks = append(marks, placed{col: col, row: row, left: p.X < -c.unit, title: st.Title})
		}
	}

	col, row := c.toCell(Point{})
	c.set(col, row, glyphCenter, cellCenter)

	if opts.Labels {
		for _, m := range marks {
			c.label(m.col, m.row, m.title, m.left)
		}
	}
	return c.String()
}

// extent is the largest radius that has to fit on the canvas.
func extent(snap orbit.Snapshot) float64 {
	e := snap.BeltRadius
	for _, st := range snap.Subtasks {
		if st.AssignedRadius != nil && *st.AssignedRadius > e {
			e = *st.AssignedRadius
		}
	}
	if e <= 0 {
		e = 1
	}
	return e
}

type canvas struct {
	w, h int
	// unit is layout units per column; rows are two columns tall.
	unit  float64
	cells [][]cell
}

func newCanvas(w, h int, extent float64) *canvas {
	if w < 8 {
		w = 8
	}
	if h < 4 {
		h = 4
	}
	c := &canvas{
		w:    w,
		h:    h,
		unit: math.Max(2*extent/float64(w-1), extent/float64(h-1)),
	}
	c.cells = make([][]cell, h)
	for i := range c.cells {
		c.cells[i] = make([]cell, w)
		for j := range c.cells[i] {
			c.cells[i][j] = cell{r: ' '}
		}
	}
	return c
}

func (c *canvas) toCell(p Point) (col, row int) {
	col = int(math.Round(float64(c.w-1)/2 + p.X/c.unit))
	row = int(math.Round(float64(c.h-1)/2 + p.Y/(2*c.unit)))
	return col, row
}

func (c *canvas) set(col, row int, r rune, kind cellKind) bool {
	if row < 0 || row >= c.h || col < 0 || col >= c.w {
		return false
	}
	if c.cells[row][col].kind > kind {
		return false
	}
	c.cells[row][col] = cell{r: r, kind: kind}
	return true
}

func (c *canvas) circle(radius float64, r rune) {
	if radius <= 0 {
		return
	}
	steps := int(2*math.Pi*radius/c.unit) * 2
	if steps < 90 {
		steps = 90
	}
	for i := 0; i < steps; i++ {
		col, row := c.toCell(Project(360*float64(i)/float64(steps), radius))
		c.set(col, row, r, cellBelt)
	}
}

// label writes title beside a marker, to the right or, for markers on the
// left half, ending just before it.
func (c *canvas) label(col, row int, title string, left bool) {
	title = strings.TrimSpace(title)
	if title == "" || row < 0 || row >= c.h {
		return
	}
	avail := c.w - (col + 2)
	if left {
		avail = col - 1
	}
	avail = min(avail, maxLabelWidth)
	if avail < 3 {
		return
	}
	text := xansi.Truncate(title, avail, "…")
	start := col + 2
	if left {
		start = col - 1 - xansi.StringWidth(text)
	}

	x := start
	for _, r := range text {
		rw := xansi.StringWidth(string(r))
		if rw == 0 {
			continue
		}
		if !c.free(x, row, rw) {
			return
		}
		c.set(x, row, r, cellLabel)
		if rw == 2 {
			c.set(x+1, row, 0, cellLabel)
		}
		x += rw
	}
}

func (c *canvas) free(col, row, n int) bool {
	for i := col; i < col+n; i++ {
		if i < 0 || i >= c.w || c.cells[row][i].kind > cellLabel {
			return false
		}
	}
	return true
}

// String renders the grid, styling runs of equal kind together.
func (c *canvas) String() string {
	var b strings.Builder
	for i, line := range c.cells {
		if i > 0 {
			b.WriteByte('\n')
		}
		var run strings.Builder
		kind := cellEmpty
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if kind == cellEmpty {
				b.WriteString(run.String())
			} else {
				b.WriteString(cellStyle(kind).Render(run.String()))
			}
			run.Reset()
		}
		for _, cl := range line {
			if cl.r == 0 {
				continue
			}
			if cl.kind != kind {
				flush()
				kind = cl.kind
			}
			run.WriteRune(cl.r)
		}
		flush()
	}
	return b.String()
}
