package browse

// DefaultColumns is the number of cards per grid row
const DefaultColumns = 5

// Cell is a position in the display grid
type Cell struct {
	Row    int
	Column int
}

// Position places the i-th accumulated movie (zero-based) in a grid of the given width.
// Placement depends only on the index, so appending never moves earlier items.
func Position(i, columns int) Cell {
	if columns < 1 {
		columns = 1
	}
	return Cell{
		Row:    i / columns,
		Column: i % columns,
	}
}

// Rows returns how many grid rows n items occupy
func Rows(n, columns int) int {
	if n <= 0 {
		return 0
	}
	if columns < 1 {
		columns = 1
	}
	return (n + columns - 1) / columns
}
