package flightpath

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownStrategy is returned by [ParseStrategy] for names it doesn't
// recognize.
var ErrUnknownStrategy = errors.New("unknown curve strategy")

// Strategy selects how a connector's curve is derived from its endpoints.
type Strategy int

const (
	// MidpointOffset raises the chord's midpoint by Options.HeightOffset in
	// screen space and yields the control polygon [from, mid, to].
	MidpointOffset Strategy = iota + 1
	// PerpendicularOffset yields a quadratic Bézier whose control point is
	// pushed sideways from the chord's midpoint by Options.Curvature times
	// the chord, perpendicular to the direction of travel.
	PerpendicularOffset
	// ParabolicSampled samples a parabolic arc between two (lon, lat) points
	// into Options.Steps+1 points.
	ParabolicSampled
)

var strategyNames = [...]string{
	MidpointOffset:      "midpoint",
	PerpendicularOffset: "perpendicular",
	ParabolicSampled:    "parabolic",
}

// Strategies returns every valid strategy, in declaration order.
func Strategies() []Strategy {
	return []Strategy{MidpointOffset, PerpendicularOffset, ParabolicSampled}
}

func (s Strategy) String() string {
	if s.Valid() {
		return strategyNames[s]
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Valid reports whether s is one of the declared strategies.
func (s Strategy) Valid() bool {
	return s >= MidpointOffset && s <= ParabolicSampled
}

// ParseStrategy parses the name of a strategy, as returned by
// [Strategy.String]. Matching is case-insensitive and ignores surrounding
// white space.
func ParseStrategy(name string) (Strategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, s := range Strategies() {
		if strategyNames[s] == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

func (s Strategy) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(s))
	}
	return []byte(s.String()), nil
}

func (s *Strategy) UnmarshalText(b []byte) error {
	v, err := ParseStrategy(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

const (
	// DefaultCurvature is the perpendicular offset coefficient of
	// [PerpendicularOffset].
	DefaultCurvature = 0.25
	// DefaultSteps is the number of sampling intervals of [ParabolicSampled].
	DefaultSteps = 20
	// DefaultHeightFactor is the arc height of [ParabolicSampled] relative to
	// the chord length.
	DefaultHeightFactor = 0.3
	// DefaultArrowPercentage is how far along the chord an arrowhead sits
	// when it is placed on the chord.
	DefaultArrowPercentage = 0.85
	// viewportHeightDivisor turns a viewport height into the default
	// MidpointOffset height offset.
	viewportHeightDivisor = 8
)

// Options configures the curve strategies. Each strategy reads only the
// fields it needs. Values are used as given, so a zero HeightOffset or
// Curvature produces a straight connector; only Steps has a fallback.
type Options struct {
	// HeightOffset is how far MidpointOffset lifts the midpoint, in the same
	// units as the points. Negative values bow the other way.
	HeightOffset float64
	// Curvature is the PerpendicularOffset coefficient k.
	Curvature float64
	// Steps is the number of ParabolicSampled intervals. Values below 1 mean
	// DefaultSteps.
	Steps int
	// HeightFactor is the ParabolicSampled arc height relative to the
	// distance between the endpoints.
	HeightFactor float64
	// ArrowPercentage is the fraction of the chord at which chord-placed
	// arrowheads sit.
	ArrowPercentage float64
}

// DefaultOptions returns the default options for a viewport of the given
// height. The height only affects HeightOffset, which is an eighth of it.
func DefaultOptions(viewportHeight float64) Options {
	return Options{
		HeightOffset:    viewportHeight / viewportHeightDivisor,
		Curvature:       DefaultCurvature,
		Steps:           DefaultSteps,
		HeightFactor:    DefaultHeightFactor,
		ArrowPercentage: DefaultArrowPercentage,
	}
}

func (opts Options) steps() int {
	if opts.Steps < 1 {
		return DefaultSteps
	}
	return opts.Steps
}
