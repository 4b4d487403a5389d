package region

import (
	"fmt"
	"math"
	"sort"

	"github.com/pygacity/sandlersteam/pkg/state"
)

// Kind names the single-phase region a table covers.
type Kind int

const (
	Superheated Kind = iota
	Subcooled
)

func (k Kind) String() string {
	if k == Subcooled {
		return "subcooled"
	}
	return "superheated"
}

// Region returns the state region of the table kind.
func (k Kind) Region() state.Region {
	if k == Subcooled {
		return state.Subcooled
	}
	return state.Superheated
}

// Table is an immutable region table.
type Table struct {
	kind   Kind
	blocks []*Block
	cells  []cell
}

// New groups samples into isobar blocks by pressure.
func New(kind Kind, samples []state.Sample) (*Table, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: %s table has no samples", state.ErrTableInvalid, kind)
	}
	byP := make(map[float64][]state.Sample)
	for _, s := range samples {
		byP[s.P] = append(byP[s.P], s)
	}

	t := &Table{kind: kind, blocks: make([]*Block, 0, len(byP))}
	for p, ss := range byP {
		b, err := newBlock(p, ss)
		if err != nil {
			return nil, fmt.Errorf("%s table: %w", kind, err)
		}
		t.blocks = append(t.blocks, b)
	}
	sort.Slice(t.blocks, func(i, j int) bool { return t.blocks[i].p < t.blocks[j].p })
	for i := 1; i < len(t.blocks); i++ {
		t.cells = append(t.cells, cellsBetween(t.blocks[i-1], t.blocks[i])...)
	}
	return t, nil
}

// Kind returns the region kind.
func (t *Table) Kind() Kind { return t.kind }

// Len returns the number of isobar blocks.
func (t *Table) Len() int { return len(t.blocks) }

// Blocks returns the isobar blocks sorted by pressure.
func (t *Table) Blocks() []*Block {
	return append([]*Block(nil), t.blocks...)
}

// Pressures returns the block pressures in ascending order.
func (t *Table) Pressures() []float64 {
	out := make([]float64, len(t.blocks))
	for i, b := range t.blocks {
		out[i] = b.p
	}
	return out
}

// Block returns the isobar at exactly pressure p.
func (t *Table) Block(p float64) (*Block, bool) {
	i := t.search(p)
	if i < len(t.blocks) && t.blocks[i].p == p {
		return t.blocks[i], true
	}
	return nil, false
}

// PressureRange returns the lowest and highest tabulated pressure.
func (t *Table) PressureRange() (pmin, pmax float64) {
	return t.blocks[0].p, t.blocks[len(t.blocks)-1].p
}

func (t *Table) search(p float64) int {
	return sort.Search(len(t.blocks), func(i int) bool { return t.blocks[i].p >= p })
}

// neighbors returns the adjacent isobars strictly enclosing p.
func (t *Table) neighbors(p float64) (lo, hi *Block, ok bool) {
	i := t.search(p)
	if i == 0 || i >= len(t.blocks) {
		return nil, nil, false
	}
	return t.blocks[i-1], t.blocks[i], true
}

// Bilinear evaluates every stored property at the state fixed by two
// properties. The pair may be given in either order.
func (t *Table) Bilinear(px state.Property, vx float64, py state.Property, vy float64) (state.Sample, error) {
	if px == py || px == state.X || py == state.X || !px.Tabulated() || !py.Tabulated() {
		return state.Sample{}, fmt.Errorf("%w: cannot interpolate %s table on (%s, %s)",
			state.ErrAmbiguousSpec, t.kind, px, py)
	}
	if py < px {
		px, vx, py, vy = py, vy, px, vx
	}

	var (
		s  state.Sample
		ok bool
	)
	switch {
	case px == state.T && py == state.P:
		s, ok = t.atTP(vx, vy)
	case px == state.T:
		s, ok = t.isotherm(vx, py, vy)
	case px == state.P:
		s, ok = t.isobar(vx, py, vy)
	default:
		found := t.contour(px, vx, py, vy)
		if len(found) > 1 {
			return state.Sample{}, fmt.Errorf("%w: %s=%g %s=%g matches %d states in the %s table",
				state.ErrAmbiguousSpec, px, vx, py, vy, len(found), t.kind)
		}
		if len(found) == 1 {
			s, ok = found[0], true
		}
	}
	if !ok {
		return state.Sample{}, fmt.Errorf("%w: %s table at %s=%g %s=%g",
			state.ErrNotBracketed, t.kind, px, vx, py, vy)
	}
	return s, nil
}

func (t *Table) atTP(temp, p float64) (state.Sample, bool) {
	if b, ok := t.Block(p); ok {
		return b.At(temp)
	}
	lo, hi, ok := t.neighbors(p)
	if !ok {
		return state.Sample{}, false
	}
	var common bool
	at := func(b *Block) (state.Sample, bool) {
		if s, ok := b.sampleAt(temp); ok {
			return s, true
		}
		if !common && !commonBracket(lo, hi, temp) {
			return state.Sample{}, false
		}
		common = true
		return b.At(temp)
	}
	sLo, ok := at(lo)
	if !ok {
		return state.Sample{}, false
	}
	sHi, ok := at(hi)
	if !ok {
		return state.Sample{}, false
	}
	s := state.Lerp(sLo, sHi, state.Fraction(p, lo.p, hi.p))
	s.T, s.P = temp, p
	return s, true
}

// commonBracket reports whether temperatures tabulated in both blocks enclose temp.
func commonBracket(a, b *Block, temp float64) bool {
	below, above := false, false
	for _, tt := range a.temps {
		if _, ok := b.sampleAt(tt); !ok {
			continue
		}
		if tt <= temp {
			below = true
		}
		if tt >= temp {
			above = true
		}
	}
	return below && above
}

// isotherm walks the isobars covering temp in order of pressure and returns
// the first point where prop equals v.
func (t *Table) isotherm(temp float64, prop state.Property, v float64) (state.Sample, bool) {
	var (
		prev    state.Sample
		hasPrev bool
	)
	for _, b := range t.blocks {
		s, ok := b.At(temp)
		if !ok {
			hasPrev = false
			continue
		}
		if s.Get(prop) == v {
			return s, true
		}
		if hasPrev {
			if r, ok := bracket(prev, s, prop, v); ok {
				r.T = temp
				return r, true
			}
		}
		prev, hasPrev = s, true
	}
	return state.Sample{}, false
}

func (t *Table) isobar(p float64, prop state.Property, v float64) (state.Sample, bool) {
	if b, ok := t.Block(p); ok {
		return b.Solve(prop, v)
	}
	lo, hi, ok := t.neighbors(p)
	if !ok {
		return state.Sample{}, false
	}
	sLo, ok := lo.Solve(prop, v)
	if !ok {
		return state.Sample{}, false
	}
	sHi, ok := hi.Solve(prop, v)
	if !ok {
		return state.Sample{}, false
	}
	s := state.Lerp(sLo, sHi, state.Fraction(p, lo.p, hi.p)).With(prop, v)
	s.P = p
	return s, true
}

// contour returns every distinct state where px = vx and py = vy. It inverts
// the (T, P) interpolation exactly: inside each cell between adjacent isobars
// the properties are bilinear in T and P, and along a single isobar they are
// linear between samples.
func (t *Table) contour(px state.Property, vx float64, py state.Property, vy float64) []state.Sample {
	var found []state.Sample
	add := func(s state.Sample) {
		for _, f := range found {
			if sameState(f, s) {
				return
			}
		}
		found = append(found, s.With(px, vx).With(py, vy))
	}
	for _, c := range t.cells {
		for _, s := range c.solve(px, vx, py, vy) {
			add(s)
		}
	}
	for _, b := range t.blocks {
		for i := 1; i < len(b.samples); i++ {
			s, ok := bracket(b.samples[i-1], b.samples[i], px, vx)
			if ok && near(s.Get(py), vy) {
				add(s)
			}
		}
	}
	return found
}

func sameState(a, b state.Sample) bool {
	return math.Abs(a.T-b.T) <= 1e-7*math.Max(1, math.Abs(a.T)) &&
		math.Abs(a.P-b.P) <= 1e-7*a.P
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Abs(b))
}
