package samurai

import "fmt"

// Point is a board coordinate. Row grows southward, Col grows eastward.
type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{Row: p.Row + q.Row, Col: p.Col + q.Col}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point {
	return Point{Row: p.Row - q.Row, Col: p.Col - q.Col}
}

// Less orders points by row, then column.
func (p Point) Less(q Point) bool {
	if p.Row != q.Row {
		return p.Row < q.Row
	}
	return p.Col < q.Col
}

// Compare returns -1, 0 or +1 following Less. Suitable for slices.SortFunc.
func (p Point) Compare(q Point) int {
	switch {
	case p.Less(q):
		return -1
	case q.Less(p):
		return 1
	default:
		return 0
	}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Rotate turns an offset by dir quarter turns. Direction 0 leaves it unchanged.
func (p Point) Rotate(dir Direction) Point {
	switch dir {
	case South:
		return p
	case East:
		return Point{Row: -p.Col, Col: p.Row}
	case North:
		return Point{Row: -p.Row, Col: -p.Col}
	case West:
		return Point{Row: p.Col, Col: -p.Row}
	default:
		panic(fmt.Sprintf("samurai: rotate by invalid direction %d", dir))
	}
}

// Manhattan returns the L1 distance between two points.
func Manhattan(a, b Point) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Direction is one of the four compass directions.
type Direction int

const (
	South Direction = iota
	East
	North
	West
)

// DirectionCount is the number of compass directions.
const DirectionCount = 4

// Stay is the null step. It is not a Direction and only appears in Steps.
var Stay = Point{}

var directionVectors = [DirectionCount]Point{
	South: {Row: 1, Col: 0},
	East:  {Row: 0, Col: 1},
	North: {Row: -1, Col: 0},
	West:  {Row: 0, Col: -1},
}

// AllDirections returns the compass directions in action-code order.
func AllDirections() []Direction {
	return []Direction{South, East, North, West}
}

// Valid reports whether d is one of the four compass directions.
func (d Direction) Valid() bool {
	return d >= South && d <= West
}

// Vector returns the unit step for d.
func (d Direction) Vector() Point {
	if !d.Valid() {
		panic(fmt.Sprintf("samurai: invalid direction %d", d))
	}
	return directionVectors[d]
}

func (d Direction) String() string {
	switch d {
	case South:
		return "south"
	case East:
		return "east"
	case North:
		return "north"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// Steps returns the four unit steps followed by Stay.
func Steps() []Point {
	return []Point{directionVectors[South], directionVectors[East], directionVectors[North], directionVectors[West], Stay}
}
