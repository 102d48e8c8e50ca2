package fuzzy

import (
	"errors"
	"math"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  TNorm
	}{
		{"min", "min", Min},
		{"product", "product", Product},
		{"lukasiewicz", "lukasiewicz", Lukasiewicz},
		{"uppercase", "MIN", Min},
		{"mixed case", "Product", Product},
		{"surrounding whitespace", "  lukasiewicz  ", Lukasiewicz},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseUnknown(t *testing.T) {
	for _, input := range []string{"", "max", "goedel", "minimum", "prod"} {
		_, err := Parse(input)
		if err == nil {
			t.Errorf("Parse(%q) expected error, got nil", input)
			continue
		}
		if !errors.Is(err, ErrUnknownTNorm) {
			t.Errorf("Parse(%q) error = %v, want ErrUnknownTNorm", input, err)
		}
	}
}

func TestString(t *testing.T) {
	for _, name := range []string{"min", "product", "lukasiewicz"} {
		tn, err := Parse(name)
		if err != nil {
			t.Fatalf("Parse(%q): %v", name, err)
		}
		if tn.String() != name {
			t.Errorf("String() = %q, want %q", tn.String(), name)
		}
	}
}

func TestCombine(t *testing.T) {
	tests := []struct {
		name  string
		tnorm TNorm
		a, b  float64
		want  float64
	}{
		{"min of equal", Min, 0.5, 0.5, 0.5},
		{"min picks smaller", Min, 0.8, 0.3, 0.3},
		{"min with zero", Min, 0.0, 1.0, 0.0},
		{"product", Product, 0.5, 0.5, 0.25},
		{"product with one", Product, 0.7, 1.0, 0.7},
		{"product with zero", Product, 0.7, 0.0, 0.0},
		{"lukasiewicz above threshold", Lukasiewicz, 0.8, 0.7, 0.5},
		{"lukasiewicz truncates to zero", Lukasiewicz, 0.3, 0.4, 0.0},
		{"lukasiewicz with one", Lukasiewicz, 0.6, 1.0, 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.tnorm.Combine(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("%v.Combine(%v, %v) = %v, want %v", tt.tnorm, tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCombineProperties(t *testing.T) {
	grid := []float64{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1}

	for _, tn := range []TNorm{Min, Product, Lukasiewicz} {
		for _, a := range grid {
			for _, b := range grid {
				got := tn.Combine(a, b)

				// Closed on [0,1].
				if got < 0 || got > 1 {
					t.Errorf("%v.Combine(%v, %v) = %v, out of [0,1]", tn, a, b, got)
				}

				// Commutative.
				if flipped := tn.Combine(b, a); math.Abs(got-flipped) > 1e-12 {
					t.Errorf("%v.Combine not commutative for (%v, %v): %v vs %v", tn, a, b, got, flipped)
				}

				// Never exceeds either argument.
				if got > a+1e-12 || got > b+1e-12 {
					t.Errorf("%v.Combine(%v, %v) = %v exceeds an argument", tn, a, b, got)
				}
			}

			// Identity element is 1.
			if got := tn.Combine(a, 1); math.Abs(got-a) > 1e-12 {
				t.Errorf("%v.Combine(%v, 1) = %v, want %v", tn, a, got, a)
			}
		}
	}
}
