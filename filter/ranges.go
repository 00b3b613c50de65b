package filter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RangeParser turns raw range input into numeric bounds.
type RangeParser func(lower, upper string) (lo, hi float64)

// ParseRangeInput is the generic RangeParser. Unparsable input reads as 0.
func ParseRangeInput(lower, upper string) (lo, hi float64) {
	return parseNumber(lower), parseNumber(upper)
}

func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// SetInput parses lower and upper with parse (ParseRangeInput when nil) and
// marks the range changed. Bounds are kept as parsed: a lower bound above
// the upper one matches nothing.
func (r *RangeData) SetInput(lower, upper string, parse RangeParser) {
	if parse == nil {
		parse = ParseRangeInput
	}
	lo, hi := parse(lower, upper)
	r.Values = RangeValues{Min: lo, Max: hi, InputMin: lower, InputMax: upper}
	r.Changed = true
}

// SetBounds moves the level slider. Bounds outside the full range are
// clamped.
func (l *LevelData) SetBounds(from, to int) error {
	if from > to {
		return fmt.Errorf("%w: %d > %d", ErrInvalidRange, from, to)
	}
	l.From = max(from, l.Min)
	l.To = min(to, l.Max)
	l.Changed = l.Active()
	return nil
}
