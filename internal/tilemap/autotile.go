package tilemap

// Variant is the visual adjacency class of an occupied tile, derived from
// which of its four neighbors carry the same tile id.
type Variant int

// The 16 variants. Names describe the exposed edges of the tile.
const (
	TopLeft         Variant = 0  // left and upper edges exposed
	Top             Variant = 1  // upper edge exposed
	TopRight        Variant = 2  // right and upper edges exposed
	Left            Variant = 3  // left edge exposed
	Center          Variant = 4  // fully surrounded
	Right           Variant = 5  // right edge exposed
	BottomLeft      Variant = 6  // left and lower edges exposed
	Bottom          Variant = 7  // lower edge exposed
	BottomRight     Variant = 8  // right and lower edges exposed
	HorizontalLeft  Variant = 9  // left end of a one-tile-high run
	Horizontal      Variant = 10 // middle of a one-tile-high run
	HorizontalRight Variant = 11 // right end of a one-tile-high run
	VerticalTop     Variant = 12 // top end of a one-tile-wide column
	Vertical        Variant = 13 // middle of a one-tile-wide column
	VerticalBottom  Variant = 14 // bottom end of a one-tile-wide column
	Single          Variant = 15 // no matching neighbor
)

// Classify derives the variant of a tile from its own id and the ids of its
// right, left, lower and upper neighbors. A neighbor matches when it has
// the same id and that id is not Empty. Side edges are decided first, then
// one-high runs, then one-wide columns, which overrule earlier choices.
func Classify(center, right, left, lower, upper int) Variant {
	same := func(n int) bool {
		return n == center && center >= 0
	}
	r, l, lo, up := same(right), same(left), same(lower), same(upper)

	v := Center

	if !r {
		switch {
		case !lo:
			v = BottomRight
		case !up:
			v = TopRight
		default:
			v = Right
		}
	}

	if !l {
		switch {
		case !lo:
			v = BottomLeft
		case !up:
			v = TopLeft
		default:
			v = Left
		}
	}

	if l && r {
		switch {
		case !lo:
			v = Bottom
		case !up:
			v = Top
		}
	}

	if !lo && !up {
		switch {
		case !r:
			v = HorizontalRight
		case !l:
			v = HorizontalLeft
		default:
			v = Horizontal
		}
	}

	if !r && !l {
		switch {
		case !up && lo:
			v = VerticalTop
		case !lo && up:
			v = VerticalBottom
		case lo && up:
			v = Vertical
		default:
			v = Single
		}
	}

	return v
}
