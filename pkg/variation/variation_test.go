package variation

import (
	"fmt"
	"math"
	"testing"
)

func TestOfDeterministic(t *testing.T) {
	first := Of("stick-42")
	for i := 0; i < 1000; i++ {
		if got := Of("stick-42"); math.Float64bits(got) != math.Float64bits(first) {
			t.Fatalf("call %d: got %v, want %v", i, got, first)
		}
	}
}

func TestOfKnownValues(t *testing.T) {
	tests := []struct {
		id   string
		want float64
	}{
		{"", 0},
		{"a", 97.0 / (1 << 31)},
		{"ab", float64(97*31+98) / (1 << 31)},
	}
	for _, tt := range tests {
		if got := Of(tt.id); got != tt.want {
			t.Errorf("Of(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestOfRange(t *testing.T) {
	ids := []string{"", "paper-1", "stick-42", "drop-éè", "a very long identity string that wraps the accumulator many times"}
	for i := 0; i < 500; i++ {
		ids = append(ids, fmt.Sprintf("drop-%d", i))
	}
	for _, id := range ids {
		v := Of(id)
		if v < 0 || v >= 1 {
			t.Errorf("Of(%q) = %v, out of [0,1)", id, v)
		}
	}
}

func TestOfSpread(t *testing.T) {
	seen := make(map[float64]struct{})
	for i := 0; i < 100; i++ {
		seen[Between(fmt.Sprintf("paper-%d", i), 0.8, 0.4)] = struct{}{}
	}
	if len(seen) < 50 {
		t.Errorf("expected visual spread across ids, got %d distinct scales of 100", len(seen))
	}
}

func TestBetweenAndSigned(t *testing.T) {
	v := Of("stick-7")
	if got := Between("stick-7", 2, 3); got != 2+v*3 {
		t.Errorf("Between = %v, want %v", got, 2+v*3)
	}
	s := Signed("stick-7", 0.5)
	if s < -0.5 || s >= 0.5 {
		t.Errorf("Signed = %v, out of [-0.5,0.5)", s)
	}
}
