package steamdata

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pygacity/sandlersteam/pkg/satd"
	"github.com/pygacity/sandlersteam/pkg/state"
)

const (
	satToken     = "Sat."
	missingToken = "-"
	blockPrefix  = "P ="
)

// lineScanner yields trimmed non-empty, non-comment lines with their numbers.
type lineScanner struct {
	sc   *bufio.Scanner
	line int
	text string
}

func newLineScanner(r io.Reader) *lineScanner {
	return &lineScanner{sc: bufio.NewScanner(r)}
}

func (l *lineScanner) next() bool {
	for l.sc.Scan() {
		l.line++
		l.text = strings.TrimSpace(l.sc.Text())
		if l.text == "" || strings.HasPrefix(l.text, "#") {
			continue
		}
		return true
	}
	return false
}

func (l *lineScanner) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("line %d: %w: %s", l.line, state.ErrTableInvalid, fmt.Sprintf(format, args...))
}

// ParseSaturation reads a saturation table file into points in file order.
func ParseSaturation(r io.Reader) ([]satd.Point, error) {
	ls := newLineScanner(r)
	if !ls.next() {
		if err := ls.sc.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: empty saturation table", state.ErrTableInvalid)
	}
	header := strings.Fields(ls.text)
	cols := make([]satd.Property, len(header))
	seen := make(map[satd.Property]bool)
	for i, name := range header {
		p, err := satd.ParseProperty(name)
		if err != nil {
			return nil, ls.errorf("header: %v", err)
		}
		cols[i] = p
		seen[p] = true
	}
	for _, p := range satd.StoredProperties() {
		if !seen[p] {
			return nil, ls.errorf("header is missing column %s", p)
		}
	}

	var points []satd.Point
	for ls.next() {
		fields := strings.Fields(ls.text)
		if len(fields) != len(cols) {
			return nil, ls.errorf("got %d values, want %d", len(fields), len(cols))
		}
		var pt satd.Point
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, ls.errorf("column %s: %v", cols[i], err)
			}
			pt.Set(cols[i], v)
		}
		points = append(points, pt)
	}
	if err := ls.sc.Err(); err != nil {
		return nil, err
	}
	return points, nil
}

type isobar struct {
	p    float64
	tsat float64
	// hasSat is false for supercritical isobars.
	hasSat bool
}

// ParseRegion reads a region table file into samples.
func ParseRegion(r io.Reader) ([]state.Sample, error) {
	ls := newLineScanner(r)
	if !ls.next() {
		if err := ls.sc.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: empty region table", state.ErrTableInvalid)
	}
	header := strings.Fields(ls.text)
	if len(header) < 2 || !strings.EqualFold(header[0], "T") {
		return nil, ls.errorf("header must start with T, got %q", ls.text)
	}
	cols := make([]state.Property, 0, len(header)-1)
	for _, name := range header[1:] {
		p, err := state.ParseProperty(name)
		if err != nil || p == state.T || p == state.P || p == state.X {
			return nil, ls.errorf("header: bad column %q", name)
		}
		cols = append(cols, p)
	}

	var (
		samples []state.Sample
		block   []isobar
	)
	for ls.next() {
		if strings.HasPrefix(ls.text, blockPrefix) {
			b, err := parseBlockLine(strings.TrimPrefix(ls.text, blockPrefix))
			if err != nil {
				return nil, ls.errorf("%v", err)
			}
			block = b
			continue
		}
		if block == nil {
			return nil, ls.errorf("data row before first %q line", blockPrefix)
		}
		fields := strings.Fields(ls.text)
		if want := 1 + len(block)*len(cols); len(fields) != want {
			return nil, ls.errorf("got %d values, want %d", len(fields), want)
		}
		for j, iso := range block {
			group := fields[1+j*len(cols) : 1+(j+1)*len(cols)]
			s, ok, err := parseGroup(fields[0], iso, cols, group)
			if err != nil {
				return nil, ls.errorf("P=%g: %v", iso.p, err)
			}
			if ok {
				samples = append(samples, s)
			}
		}
	}
	if err := ls.sc.Err(); err != nil {
		return nil, err
	}
	return samples, nil
}

// parseBlockLine parses "0.01 MPa (45.81) 0.05 MPa (81.32) 30 MPa".
func parseBlockLine(s string) ([]isobar, error) {
	var out []isobar
	for _, tok := range strings.Fields(s) {
		switch {
		case strings.EqualFold(tok, "MPa"):
		case strings.HasPrefix(tok, "(") && strings.HasSuffix(tok, ")"):
			if len(out) == 0 {
				return nil, fmt.Errorf("saturation temperature %s before pressure", tok)
			}
			v, err := strconv.ParseFloat(strings.Trim(tok, "()"), 64)
			if err != nil {
				return nil, fmt.Errorf("saturation temperature %s: %v", tok, err)
			}
			out[len(out)-1].tsat, out[len(out)-1].hasSat = v, true
		default:
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, fmt.Errorf("pressure %q: %v", tok, err)
			}
			out = append(out, isobar{p: v})
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("block line names no pressures")
	}
	return out, nil
}

// parseGroup builds the sample for one pressure of a data row. It reports
// false when the row does not cover the pressure.
func parseGroup(tField string, iso isobar, cols []state.Property, group []string) (state.Sample, bool, error) {
	missing := 0
	for _, f := range group {
		if f == missingToken {
			missing++
		}
	}
	switch missing {
	case len(group):
		return state.Sample{}, false, nil
	case 0:
	default:
		return state.Sample{}, false, fmt.Errorf("row %s mixes values and %q", tField, missingToken)
	}

	var t float64
	if tField == satToken {
		if !iso.hasSat {
			return state.Sample{}, false, fmt.Errorf("%s row for an isobar without saturation temperature", satToken)
		}
		t = iso.tsat
	} else {
		v, err := strconv.ParseFloat(tField, 64)
		if err != nil {
			return state.Sample{}, false, fmt.Errorf("temperature %q: %v", tField, err)
		}
		t = v
	}

	s := state.Sample{T: t, P: iso.p}
	for i, f := range group {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return state.Sample{}, false, fmt.Errorf("T=%s %s: %v", tField, cols[i], err)
		}
		s = s.With(cols[i], v)
	}
	return s, true, nil
}
