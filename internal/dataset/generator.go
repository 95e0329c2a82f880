package dataset

import (
	"fmt"
	"math/rand/v2"

	apperrors "mergebench/internal/errors"
)

// Range is a closed integer interval [Min, Max].
type Range struct {
	Min int `mapstructure:"min"`
	Max int `mapstructure:"max"`
}

// DefaultRange is the value range used when none is configured.
var DefaultRange = Range{Min: 100, Max: 999}

// Validate returns an error when Min > Max.
func (r Range) Validate() error {
	if r.Min > r.Max {
		return fmt.Errorf("value range [%d, %d] is empty: min must not exceed max", r.Min, r.Max)
	}
	return nil
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d]", r.Min, r.Max)
}

// Generator produces datasets of independent, uniformly distributed values.
type Generator struct {
	bounds Range
	rng    *rand.Rand // nil means the process-wide source
}

// NewGenerator returns a generator for bounds. A zero seed draws from the
// process-wide random source; any other seed gives a reproducible stream.
func NewGenerator(bounds Range, seed uint64) (*Generator, error) {
	if err := bounds.Validate(); err != nil {
		return nil, err
	}
	g := &Generator{bounds: bounds}
	if seed != 0 {
		g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	return g, nil
}

// Bounds returns the range values are drawn from.
func (g *Generator) Bounds() Range {
	return g.bounds
}

// Generate returns exactly count values. A count of zero yields an empty,
// non-nil dataset.
func (g *Generator) Generate(count int) ([]int, error) {
	if count < 0 {
		return nil, &apperrors.InputError{Field: "count", Value: count, Reason: "must not be negative"}
	}

	span := g.bounds.Max - g.bounds.Min + 1
	data := make([]int, count)
	for i := range data {
		data[i] = g.bounds.Min + g.intN(span)
	}
	return data, nil
}

func (g *Generator) intN(n int) int {
	if g.rng == nil {
		return rand.IntN(n)
	}
	return g.rng.IntN(n)
}
