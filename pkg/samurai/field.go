package samurai

import "fmt"

// Cell is the observed state of one board cell.
// Values 0..5 mean the cell is occupied by that unit.
type Cell int8

const (
	Free    Cell = 8
	Unknown Cell = 9
)

// Occupied returns the cell value for territory held by u.
func Occupied(u UnitID) Cell {
	return Cell(u)
}

// IsOccupied reports whether some unit holds the cell.
func (c Cell) IsOccupied() bool {
	return c >= 0 && c < UnitCount
}

// IsFriend reports whether a friendly unit holds the cell.
func (c Cell) IsFriend() bool {
	return c >= 0 && c < FriendCount
}

// IsEnemy reports whether an adversary holds the cell.
func (c Cell) IsEnemy() bool {
	return c >= FriendCount && c < UnitCount
}

// Known reports whether the cell was visible when observed.
func (c Cell) Known() bool {
	return c != Unknown
}

// Owner returns the unit holding the cell. Only meaningful when IsOccupied.
func (c Cell) Owner() UnitID {
	return UnitID(c)
}

// Field is a height x width grid of cells stored row-major.
type Field struct {
	Height int    `json:"height"`
	Width  int    `json:"width"`
	Cells  []Cell `json:"cells"`
}

// NewField returns a grid with every cell set to fill.
func NewField(height, width int, fill Cell) *Field {
	cells := make([]Cell, height*width)
	for i := range cells {
		cells[i] = fill
	}
	return &Field{Height: height, Width: width, Cells: cells}
}

// InBounds reports whether p lies on the board.
func (f *Field) InBounds(p Point) bool {
	return p.Row >= 0 && p.Row < f.Height && p.Col >= 0 && p.Col < f.Width
}

// At returns the cell at p. Off-board points read as Unknown.
func (f *Field) At(p Point) Cell {
	if !f.InBounds(p) {
		return Unknown
	}
	return f.Cells[p.Row*f.Width+p.Col]
}

// Set writes c at p. Off-board writes are ignored.
func (f *Field) Set(p Point, c Cell) {
	if !f.InBounds(p) {
		return
	}
	f.Cells[p.Row*f.Width+p.Col] = c
}

// Clone returns a deep copy.
func (f *Field) Clone() *Field {
	cells := make([]Cell, len(f.Cells))
	copy(cells, f.Cells)
	return &Field{Height: f.Height, Width: f.Width, Cells: cells}
}

// Equal reports whether both grids have the same shape and contents.
func (f *Field) Equal(g *Field) bool {
	if f.Height != g.Height || f.Width != g.Width || len(f.Cells) != len(g.Cells) {
		return false
	}
	for i := range f.Cells {
		if f.Cells[i] != g.Cells[i] {
			return false
		}
	}
	return true
}

// Merge copies every known cell of src into f. Both must have the same shape.
func (f *Field) Merge(src *Field) error {
	if f.Height != src.Height || f.Width != src.Width {
		return fmt.Errorf("merge %dx%d into %dx%d field", src.Height, src.Width, f.Height, f.Width)
	}
	for i, c := range src.Cells {
		if c.Known() {
			f.Cells[i] = c
		}
	}
	return nil
}

// Points calls fn for every cell position in row-major order.
func (f *Field) Points(fn func(p Point)) {
	for r := 0; r < f.Height; r++ {
		for c := 0; c < f.Width; c++ {
			fn(Point{Row: r, Col: c})
		}
	}
}
