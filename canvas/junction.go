package canvas

// Box-drawing runes used by the canvas.
const (
	Horizontal  = '─'
	Vertical    = '│'
	Cross       = '┼'
	TeeDown     = '┬'
	TeeUp       = '┴'
	TeeRight    = '├'
	TeeLeft     = '┤'
	TopLeft     = '┌'
	TopRight    = '┐'
	BottomLeft  = '└'
	BottomRight = '┘'

	RoundTopLeft     = '╭'
	RoundTopRight    = '╮'
	RoundBottomLeft  = '╰'
	RoundBottomRight = '╯'

	Marker = '●'
)

// CharacterMerger combines two box-drawing runes drawn at the same cell.
type CharacterMerger struct {
	mergeMap map[mergePair]rune
}

type mergePair struct {
	existing rune
	new      rune
}

// NewCharacterMerger creates a merger with the standard junction rules.
func NewCharacterMerger() *CharacterMerger {
	m := &CharacterMerger{mergeMap: make(map[mergePair]rune)}
	m.initializeMergeRules()
	return m
}

// Merge returns the rune to show when new is drawn over existing.
// Merging is commutative; unknown pairs keep the existing rune.
func (m *CharacterMerger) Merge(existing, new rune) rune {
	if existing == ' ' || existing == 0 {
		return new
	}
	if existing == new {
		return existing
	}
	if existing == Marker || new == Marker {
		return Marker
	}
	if merged, ok := m.mergeMap[mergePair{existing, new}]; ok {
		return merged
	}
	if merged, ok := m.mergeMap[mergePair{new, existing}]; ok {
		return merged
	}
	return existing
}

func (m *CharacterMerger) add(a, b, result rune) {
	m.mergeMap[mergePair{a, b}] = result
}

func (m *CharacterMerger) initializeMergeRules() {
	m.add(Horizontal, Vertical, Cross)

	// Corner + line = T-junction
	for _, c := range []rune{TopLeft, RoundTopLeft, TopRight, RoundTopRight} {
		m.add(c, Horizontal, TeeDown)
	}
	for _, c := range []rune{BottomLeft, RoundBottomLeft, BottomRight, RoundBottomRight} {
		m.add(c, Horizontal, TeeUp)
	}
	for _, c := range []rune{TopLeft, RoundTopLeft, BottomLeft, RoundBottomLeft} {
		m.add(c, Vertical, TeeRight)
	}
	for _, c := range []rune{TopRight, RoundTopRight, BottomRight, RoundBottomRight} {
		m.add(c, Vertical, TeeLeft)
	}

	// A perpendicular line through a T makes a cross; a parallel one keeps the branch.
	m.add(TeeDown, Vertical, Cross)
	m.add(TeeUp, Vertical, Cross)
	m.add(TeeRight, Horizontal, Cross)
	m.add(TeeLeft, Horizontal, Cross)
	m.add(TeeDown, Horizontal, TeeDown)
	m.add(TeeUp, Horizontal, TeeUp)
	m.add(TeeRight, Vertical, TeeRight)
	m.add(TeeLeft, Vertical, TeeLeft)
	m.add(TeeDown, TeeUp, Cross)
	m.add(TeeRight, TeeLeft, Cross)

	// Corner + corner
	m.add(TopLeft, BottomRight, Cross)
	m.add(TopRight, BottomLeft, Cross)
	m.add(RoundTopLeft, RoundBottomRight, Cross)
	m.add(RoundTopRight, RoundBottomLeft, Cross)
	m.add(TopLeft, TopRight, TeeDown)
	m.add(RoundTopLeft, RoundTopRight, TeeDown)
	m.add(BottomLeft, BottomRight, TeeUp)
	m.add(RoundBottomLeft, RoundBottomRight, TeeUp)
	m.add(TopLeft, BottomLeft, TeeRight)
	m.add(RoundTopLeft, RoundBottomLeft, TeeRight)
	m.add(TopRight, BottomRight, TeeLeft)
	m.add(RoundTopRight, RoundBottomRight, TeeLeft)

	// ASCII
	m.add('-', '|', '+')
	m.add('+', '-', '+')
	m.add('+', '|', '+')
}

// selectCorner picks the rounded corner joining the segment prev→curr to curr→next.
func selectCorner(prev, curr, next Cell) rune {
	from := direction(prev, curr)
	to := direction(curr, next)

	switch {
	case from == 'E' && to == 'S', from == 'N' && to == 'W':
		return RoundTopRight
	case from == 'E' && to == 'N', from == 'S' && to == 'W':
		return RoundBottomRight
	case from == 'W' && to == 'S', from == 'N' && to == 'E':
		return RoundTopLeft
	case from == 'W' && to == 'N', from == 'S' && to == 'E':
		return RoundBottomLeft
	case from == to && (from == 'E' || from == 'W'):
		return Horizontal
	case from == to:
		return Vertical
	default:
		return Cross
	}
}

// direction returns the compass direction from a to b.
func direction(a, b Cell) rune {
	switch {
	case b.X > a.X:
		return 'E'
	case b.X < a.X:
		return 'W'
	case b.Y > a.Y:
		return 'S'
	default:
		return 'N'
	}
}
