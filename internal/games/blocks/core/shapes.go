package core

// Cell is a (row, col) coordinate on the board or an offset from an anchor.
// Row grows downward, col grows to the right.
type Cell struct {
	Row, Col int
}

// C is a shorthand constructor for Cell.
func C(row, col int) Cell {
	return Cell{Row: row, Col: col}
}

// Add returns the sum of two cells.
func (c Cell) Add(other Cell) Cell {
	return Cell{Row: c.Row + other.Row, Col: c.Col + other.Col}
}

// ShapeKind identifies one of the catalog shapes.
type ShapeKind int

const (
	ShapeSquare ShapeKind = iota
	ShapeLine
	ShapeS
	ShapeZ
	ShapeT
	ShapeL
	ShapeJ
)

// String returns the conventional letter for the shape.
func (k ShapeKind) String() string {
	switch k {
	case ShapeSquare:
		return "O"
	case ShapeLine:
		return "I"
	case ShapeS:
		return "S"
	case ShapeZ:
		return "Z"
	case ShapeT:
		return "T"
	case ShapeL:
		return "L"
	case ShapeJ:
		return "J"
	default:
		return "?"
	}
}

// Shape is a piece template: four offsets relative to the piece anchor.
type Shape struct {
	Kind    ShapeKind
	Offsets [4]Cell
}

// catalog holds the seven templates. Pieces never rotate, so each shape has
// exactly one orientation.
var catalog = [...]Shape{
	{Kind: ShapeSquare, Offsets: [4]Cell{{0, 0}, {0, 1}, {1, 0}, {1, 1}}},
	{Kind: ShapeLine, Offsets: [4]Cell{{0, -1}, {0, 0}, {0, 1}, {0, 2}}},
	{Kind: ShapeS, Offsets: [4]Cell{{0, 0}, {0, -1}, {1, 0}, {1, 1}}},
	{Kind: ShapeZ, Offsets: [4]Cell{{0, 0}, {0, 1}, {1, 0}, {1, -1}}},
	{Kind: ShapeT, Offsets: [4]Cell{{0, 0}, {0, -1}, {0, 1}, {1, 0}}},
	{Kind: ShapeL, Offsets: [4]Cell{{0, 0}, {0, -1}, {0, 1}, {1, -1}}},
	{Kind: ShapeJ, Offsets: [4]Cell{{0, 0}, {0, -1}, {0, 1}, {1, 1}}},
}

// Shapes returns the seven catalog templates in catalog order.
// The returned slice is a copy; the catalog itself never changes.
func Shapes() []Shape {
	out := make([]Shape, len(catalog))
	copy(out, catalog[:])
	return out
}

// ShapeOf returns the catalog template for a kind.
func ShapeOf(kind ShapeKind) (Shape, bool) {
	if kind < 0 || int(kind) >= len(catalog) {
		return Shape{}, false
	}
	return catalog[kind], true
}
