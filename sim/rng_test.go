package sim

import "testing"

func TestSourceSameSeedSameSequence(t *testing.T) {
	a := NewSource(42)
	b := NewSource(42)

	for i := 0; i < 100; i++ {
		if av, bv := a.NextFloat(), b.NextFloat(); av != bv {
			t.Fatalf("draw %d: %v != %v", i, av, bv)
		}
		if av, bv := a.NextInt(1, 6), b.NextInt(1, 6); av != bv {
			t.Fatalf("int draw %d: %d != %d", i, av, bv)
		}
		if av, bv := a.NextFloatRange(-5, 5), b.NextFloatRange(-5, 5); av != bv {
			t.Fatalf("range draw %d: %v != %v", i, av, bv)
		}
	}
}

func TestSourceSetSeedResets(t *testing.T) {
	s := NewSource(1)
	for i := 0; i < 50; i++ {
		s.NextFloat()
	}
	s.SetSeed(99)

	fresh := NewSource(99)
	for i := 0; i < 20; i++ {
		if sv, fv := s.NextFloat(), fresh.NextFloat(); sv != fv {
			t.Fatalf("draw %d after reseed: %v != %v", i, sv, fv)
		}
	}
}

func TestNextFloatRange01(t *testing.T) {
	s := NewSource(7)
	for i := 0; i < 1000; i++ {
		v := s.NextFloat()
		if v < 0 || v >= 1 {
			t.Fatalf("NextFloat returned %v, want [0, 1)", v)
		}
	}
}

func TestNextIntInclusive(t *testing.T) {
	s := NewSource(3)

	if v := s.NextInt(5, 5); v != 5 {
		t.Fatalf("NextInt(5, 5) = %d, want 5", v)
	}

	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		v := s.NextInt(1, 3)
		if v < 1 || v > 3 {
			t.Fatalf("NextInt(1, 3) = %d, out of range", v)
		}
		seen[v] = true
	}
	if len(seen) != 3 {
		t.Fatalf("NextInt(1, 3) over 1000 draws hit %d distinct values, want 3", len(seen))
	}
}

func TestNextIntSwapsReversedBounds(t *testing.T) {
	s := NewSource(3)
	for i := 0; i < 100; i++ {
		v := s.NextInt(10, 2)
		if v < 2 || v > 10 {
			t.Fatalf("NextInt(10, 2) = %d, out of [2, 10]", v)
		}
	}
}

func TestNextFloatRangeBounds(t *testing.T) {
	s := NewSource(11)
	for i := 0; i < 1000; i++ {
		v := s.NextFloatRange(0.95, 1.05)
		if v < 0.95 || v >= 1.05 {
			t.Fatalf("NextFloatRange(0.95, 1.05) = %v, out of range", v)
		}
	}
}

func TestChanceExtremes(t *testing.T) {
	s := NewSource(13)
	for i := 0; i < 100; i++ {
		if s.Chance(0) {
			t.Fatal("Chance(0) returned true")
		}
		if !s.Chance(1) {
			t.Fatal("Chance(1) returned false")
		}
	}
}

func TestChanceConsumesOneDraw(t *testing.T) {
	a := NewSource(17)
	b := NewSource(17)

	a.Chance(0.5)
	b.NextFloat()

	if av, bv := a.NextFloat(), b.NextFloat(); av != bv {
		t.Fatalf("sources diverged after Chance: %v != %v", av, bv)
	}
}

func TestPick(t *testing.T) {
	s := NewSource(19)
	items := []string{"a", "b", "c"}

	for i := 0; i < 100; i++ {
		v, ok := Pick(s, items)
		if !ok {
			t.Fatal("Pick returned ok=false for non-empty slice")
		}
		if v != "a" && v != "b" && v != "c" {
			t.Fatalf("Pick returned %q, not in slice", v)
		}
	}
}

func TestPickEmptyConsumesNoDraw(t *testing.T) {
	a := NewSource(23)
	b := NewSource(23)

	if _, ok := Pick(a, []int(nil)); ok {
		t.Fatal("Pick returned ok=true for empty slice")
	}

	if av, bv := a.NextFloat(), b.NextFloat(); av != bv {
		t.Fatalf("empty Pick consumed a draw: %v != %v", av, bv)
	}
}
