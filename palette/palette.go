// Package palette assigns stroke colours to connections.
package palette

import (
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

// Fallback is used once every palette colour has been handed out.
var Fallback = colorful.Color{}

// Parse converts #rrggbb strings to colours.
func Parse(hexes []string) ([]colorful.Color, error) {
	colors := make([]colorful.Color, 0, len(hexes))
	for _, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, err
		}
		colors = append(colors, c)
	}
	return colors, nil
}

// Pick selects the colour at floor(draw*len(remaining)) and returns it with a
// new slice holding the colours not picked. draw is expected in [0, 1); values
// outside are clamped. remaining is never modified. An empty remaining yields
// Fallback.
func Pick(remaining []colorful.Color, draw float64) (colorful.Color, []colorful.Color) {
	if len(remaining) == 0 {
		return Fallback, nil
	}

	i := int(draw * float64(len(remaining)))
	i = max(0, min(i, len(remaining)-1))

	rest := make([]colorful.Color, 0, len(remaining)-1)
	rest = append(rest, remaining[:i]...)
	rest = append(rest, remaining[i+1:]...)
	return remaining[i], rest
}

// Picker hands out palette colours without repetition, using a seeded source
// so that equal seeds give equal assignments.
type Picker struct {
	remaining []colorful.Color
	rng       *rand.Rand
}

// NewPicker creates a picker over colors seeded with seed.
func NewPicker(colors []colorful.Color, seed uint64) *Picker {
	return &Picker{
		remaining: append([]colorful.Color(nil), colors...),
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Next returns the next colour as #rrggbb.
func (p *Picker) Next() string {
	var c colorful.Color
	c, p.remaining = Pick(p.remaining, p.rng.Float64())
	return c.Hex()
}

// Remaining returns how many palette colours are still unassigned.
func (p *Picker) Remaining() int {
	return len(p.remaining)
}
