package state

import "errors"

// Resolution errors. Every failure returned by the steam packages wraps exactly
// one of these, so callers can branch with errors.Is.
var (
	// ErrAmbiguousSpec is returned when a specification does not name exactly
	// two distinct properties, pairs quality with quality, or matches more than
	// one tabulated state.
	ErrAmbiguousSpec = errors.New("steam: ambiguous state specification")

	// ErrOutOfRange is returned when an axis value lies outside a table's domain
	// and strict interpolation is required.
	ErrOutOfRange = errors.New("steam: value out of range")

	// ErrSaturationLimitExceeded is returned when a saturation query falls
	// beyond the saturation table bounds.
	ErrSaturationLimitExceeded = errors.New("steam: saturation limit exceeded")

	// ErrNotBracketed is returned when a region table has no blocks or
	// temperatures enclosing the requested pair.
	ErrNotBracketed = errors.New("steam: state not bracketed by table data")

	// ErrNonMonotonicMixture is returned when quality plus a non-T/P property
	// matches the saturated mixture at more than one temperature.
	ErrNonMonotonicMixture = errors.New("steam: mixture property is not monotonic in temperature")

	// ErrTableInvalid is returned when table data violates ordering invariants.
	ErrTableInvalid = errors.New("steam: invalid table data")
)

var kinds = []struct {
	err  error
	name string
}{
	{ErrAmbiguousSpec, "AmbiguousSpec"},
	{ErrOutOfRange, "OutOfRange"},
	{ErrSaturationLimitExceeded, "SaturationLimitExceeded"},
	{ErrNotBracketed, "NotBracketed"},
	{ErrNonMonotonicMixture, "NonMonotonicMixture"},
	{ErrTableInvalid, "TableInvalid"},
}

// Kind returns the short kind name of err ("NotBracketed", ...), or "" when err
// does not wrap any of the resolution errors.
func Kind(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return ""
}
