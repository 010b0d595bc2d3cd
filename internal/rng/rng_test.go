package rng

import "testing"

func TestNewIsDeterministic(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 100; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("sources with equal seeds diverged at roll %d", i)
		}
	}
}

func TestRange(t *testing.T) {
	src := New(7)
	for i := 0; i < 500; i++ {
		v := Range(src, 2, 5)
		if v < 2 || v > 5 {
			t.Fatalf("Range(2,5) = %d, out of bounds", v)
		}
	}
	if got := Range(src, 3, 3); got != 3 {
		t.Errorf("Range(3,3) = %d, want 3", got)
	}
	if got := Range(src, 4, 1); got != 4 {
		t.Errorf("Range(4,1) = %d, want 4", got)
	}
}

func TestChance(t *testing.T) {
	tests := []struct {
		name string
		roll float64
		p    float64
		want bool
	}{
		{"certain", 0.999, 1, true},
		{"impossible", 0, 0, false},
		{"roll under", 0.3, 0.5, true},
		{"roll over", 0.7, 0.5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &Fixed{Floats: []float64{tt.roll}}
			if got := Chance(src, tt.p); got != tt.want {
				t.Errorf("Chance(%v) with roll %v = %v, want %v", tt.p, tt.roll, got, tt.want)
			}
		})
	}
}

func TestFixedRepeatsLastValue(t *testing.T) {
	f := &Fixed{Floats: []float64{0.1, 0.2}, Ints: []int{5}}
	f.Float64()
	f.Float64()
	if got := f.Float64(); got != 0.2 {
		t.Errorf("third Float64 = %v, want 0.2", got)
	}
	if got := f.IntN(3); got != 2 {
		t.Errorf("IntN(3) = %d, want 2", got)
	}
}
