package state

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNewSpec(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Quantity
		wantPair Pair
		wantErr  bool
	}{
		{"canonical order", Q(T, 525), Q(P, 10), PairTP, false},
		{"reversed order", Q(P, 10), Q(T, 525), PairTP, false},
		{"quality last", Q(X, 0.5), Q(H, 1500), PairHX, false},
		{"zero values count", Q(V, 0), Q(X, 0), PairVX, false},
		{"duplicate", Q(T, 1), Q(T, 2), PairNone, true},
		{"quality twice", Q(X, 0), Q(X, 1), PairNone, true},
		{"invalid property", Q(Property(9), 1), Q(T, 2), PairNone, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSpec(tt.a, tt.b)
			if tt.wantErr {
				if !errors.Is(err, ErrAmbiguousSpec) {
					t.Errorf("NewSpec() error = %v, want ErrAmbiguousSpec", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewSpec() error = %v", err)
			}
			if s.Pair() != tt.wantPair {
				t.Errorf("Pair() = %v, want %v", s.Pair(), tt.wantPair)
			}
			if s.First().Property > s.Second().Property {
				t.Errorf("spec %v not in canonical order", s)
			}
		})
	}
}

func TestSpec_ZeroValueIsPresent(t *testing.T) {
	s, err := NewSpec(Q(T, 100), Q(X, 0))
	if err != nil {
		t.Fatalf("NewSpec() error = %v", err)
	}
	v, ok := s.Value(X)
	if !ok || v != 0 {
		t.Errorf("Value(X) = %v, %v, want 0, true", v, ok)
	}
	if s.Has(P) {
		t.Error("Has(P) = true, want false")
	}
	if got := s.Other(X); got != Q(T, 100) {
		t.Errorf("Other(X) = %v, want T=100", got)
	}
}

func TestParseSpec(t *testing.T) {
	tests := []struct {
		args    []string
		want    string
		wantErr bool
	}{
		{[]string{"T=525", "P=10"}, "T=525 P=10", false},
		{[]string{"x=0.5", "t=150"}, "T=150 x=0.5", false},
		{[]string{"H = 2000", "P=1"}, "P=1 h=2000", false},
		{[]string{"T=525"}, "", true},
		{[]string{"T=525", "P=10", "v=1"}, "", true},
		{[]string{"T525", "P=10"}, "", true},
		{[]string{"Q=1", "P=10"}, "", true},
		{[]string{"T=hot", "P=10"}, "", true},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, ","), func(t *testing.T) {
			s, err := ParseSpec(tt.args...)
			if tt.wantErr {
				if !errors.Is(err, ErrAmbiguousSpec) {
					t.Errorf("ParseSpec() error = %v, want ErrAmbiguousSpec", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSpec() error = %v", err)
			}
			if s.String() != tt.want {
				t.Errorf("String() = %q, want %q", s.String(), tt.want)
			}
		})
	}
}

func TestSpecFromMap(t *testing.T) {
	s, err := SpecFromMap(map[Property]float64{S: 6.5, H: 3000})
	if err != nil {
		t.Fatalf("SpecFromMap() error = %v", err)
	}
	if s.Pair() != PairHS {
		t.Errorf("Pair() = %v, want hs", s.Pair())
	}
	if _, err := SpecFromMap(map[Property]float64{T: 1}); !errors.Is(err, ErrAmbiguousSpec) {
		t.Errorf("SpecFromMap(one) error = %v, want ErrAmbiguousSpec", err)
	}
}

func TestSpec_ZeroIsInvalid(t *testing.T) {
	var s Spec
	if err := s.Validate(); !errors.Is(err, ErrAmbiguousSpec) {
		t.Errorf("Validate() error = %v, want ErrAmbiguousSpec", err)
	}
}

func TestPairs(t *testing.T) {
	pairs := Pairs()
	if len(pairs) != 21 {
		t.Fatalf("len(Pairs()) = %d, want 21", len(pairs))
	}
	seen := make(map[string]bool)
	for _, p := range pairs {
		a, b := p.Properties()
		if PairOf(b, a) != p {
			t.Errorf("PairOf(%v, %v) = %v, want %v", b, a, PairOf(b, a), p)
		}
		if seen[p.String()] {
			t.Errorf("duplicate pair name %s", p)
		}
		seen[p.String()] = true
	}
	if !PairTX.HasQuality() || PairTP.HasQuality() {
		t.Error("HasQuality mismatch")
	}
	if !PairPS.HasAxis() || PairHS.HasAxis() {
		t.Error("HasAxis mismatch")
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("wrapped: %w", ErrNotBracketed), "NotBracketed"},
		{ErrSaturationLimitExceeded, "SaturationLimitExceeded"},
		{ErrNonMonotonicMixture, "NonMonotonicMixture"},
		{errors.New("other"), ""},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := Kind(tt.err); got != tt.want {
			t.Errorf("Kind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
