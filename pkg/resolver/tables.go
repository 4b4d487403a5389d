package resolver

import (
	"errors"
	"fmt"

	"github.com/pygacity/sandlersteam/pkg/region"
	"github.com/pygacity/sandlersteam/pkg/satd"
	"github.com/pygacity/sandlersteam/pkg/state"
)

// Tables is the set of property tables a Resolver reads from.
type Tables struct {
	Saturation  *satd.Table
	Superheated *region.Table
	Subcooled   *region.Table
}

// Validate checks that every table is present and of the right kind.
func (t Tables) Validate() error {
	var errs []error
	if t.Saturation == nil {
		errs = append(errs, errors.New("saturation table is required"))
	}
	if t.Superheated == nil {
		errs = append(errs, errors.New("superheated table is required"))
	} else if t.Superheated.Kind() != region.Superheated {
		errs = append(errs, fmt.Errorf("superheated slot holds a %s table", t.Superheated.Kind()))
	}
	if t.Subcooled == nil {
		errs = append(errs, errors.New("subcooled table is required"))
	} else if t.Subcooled.Kind() != region.Subcooled {
		errs = append(errs, fmt.Errorf("subcooled slot holds a %s table", t.Subcooled.Kind()))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", state.ErrTableInvalid, errors.Join(errs...))
	}
	return nil
}

// Region returns the single-phase table for r.
func (t Tables) Region(r state.Region) *region.Table {
	if r == state.Subcooled {
		return t.Subcooled
	}
	return t.Superheated
}
