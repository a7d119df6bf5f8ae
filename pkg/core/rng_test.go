package core

import "testing"

func TestRNGDeterministic(t *testing.T) {
	a, b := NewRNG(7), NewRNG(7)
	for i := 0; i < 100; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("draw %d diverged", i)
		}
	}
}

func TestCenteredRange(t *testing.T) {
	r := NewRNG(1)
	for i := 0; i < 1000; i++ {
		v := r.Centered(4)
		if v < -2 || v >= 2 {
			t.Fatalf("Centered(4) = %v out of range", v)
		}
	}
}

func TestIntNNonPositive(t *testing.T) {
	r := NewRNG(1)
	if r.IntN(0) != 0 || r.IntN(-3) != 0 {
		t.Fatal("IntN must return 0 for n <= 0")
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	s := make([]int, 50)
	for i := range s {
		s[i] = i
	}
	Shuffle(NewRNG(3), s)
	seen := make([]bool, len(s))
	moved := false
	for i, v := range s {
		if seen[v] {
			t.Fatalf("value %d repeated", v)
		}
		seen[v] = true
		if v != i {
			moved = true
		}
	}
	if !moved {
		t.Fatal("expected shuffle to reorder the slice")
	}
}
