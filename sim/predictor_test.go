package sim

import (
	"math"
	"testing"

	"zeroedge/store"
)

func TestPredictErrorOverride(t *testing.T) {
	p := NewHeuristicPredictor(NewSource(1), 70)

	est := p.Predict(store.Machine{Status: store.MachineError, Health: 95, OEE: 98})
	if est.RemainingUsefulLife != 0 {
		t.Fatalf("RUL = %v for Error machine, want 0", est.RemainingUsefulLife)
	}
	if est.FailureProbability != 100 {
		t.Fatalf("failure probability = %v for Error machine, want 100", est.FailureProbability)
	}
}

func TestPredictErrorConsumesNoDraws(t *testing.T) {
	src := NewSource(5)
	ref := NewSource(5)
	p := NewHeuristicPredictor(src, 70)

	p.Predict(store.Machine{Status: store.MachineError, Health: 50})

	if av, bv := src.NextFloat(), ref.NextFloat(); av != bv {
		t.Fatalf("Error prediction consumed a draw: %v != %v", av, bv)
	}
}

func TestPredictBounds(t *testing.T) {
	p := NewHeuristicPredictor(NewSource(2), 70)

	healths := []float64{0, 10, 24.9, 25, 49.9, 50, 74.9, 75, 89.9, 90, 100}
	for _, h := range healths {
		for i := 0; i < 20; i++ {
			est := p.Predict(store.Machine{Status: store.MachineRunning, Health: h, OEE: 85})
			if est.RemainingUsefulLife < 0 || est.RemainingUsefulLife > 1000 {
				t.Fatalf("health %v: RUL %v out of [0, 1000]", h, est.RemainingUsefulLife)
			}
			if est.FailureProbability < 0 || est.FailureProbability > 100 {
				t.Fatalf("health %v: probability %v out of [0, 100]", h, est.FailureProbability)
			}
		}
	}
}

func TestPredictRoundsToOneDecimal(t *testing.T) {
	p := NewHeuristicPredictor(NewSource(3), 70)

	for i := 0; i < 50; i++ {
		est := p.Predict(store.Machine{Status: store.MachineRunning, Health: 63.7, OEE: 81.2})
		if r := est.RemainingUsefulLife * 10; r != math.Round(r) {
			t.Fatalf("RUL %v not rounded to one decimal", est.RemainingUsefulLife)
		}
		if r := est.FailureProbability * 10; r != math.Round(r) {
			t.Fatalf("probability %v not rounded to one decimal", est.FailureProbability)
		}
	}
}

func TestPredictFailureBands(t *testing.T) {
	cases := []struct {
		health   float64
		min, max float64
	}{
		{95, 0.5, 5},
		{90, 0.5, 5},
		{80, 5, 15},
		{75, 5, 15},
		{60, 15, 40},
		{50, 15, 40},
		{30, 40, 70},
		{25, 40, 70},
		{10, 70, 100},
		{0, 70, 100},
	}

	p := NewHeuristicPredictor(NewSource(4), 70)
	for _, tc := range cases {
		for i := 0; i < 20; i++ {
			est := p.Predict(store.Machine{Status: store.MachineRunning, Health: tc.health, OEE: 90})
			if est.FailureProbability < tc.min || est.FailureProbability > tc.max {
				t.Fatalf("health %v: probability %v outside band [%v, %v]",
					tc.health, est.FailureProbability, tc.min, tc.max)
			}
		}
	}
}

func TestPredictLowOEEPenalty(t *testing.T) {
	// Same seed, same draw order, so the noise factor matches and the
	// only difference is the penalty.
	good := NewHeuristicPredictor(NewSource(6), 70).
		Predict(store.Machine{Status: store.MachineRunning, Health: 80, OEE: 85})
	bad := NewHeuristicPredictor(NewSource(6), 70).
		Predict(store.Machine{Status: store.MachineRunning, Health: 80, OEE: 60})

	want := math.Round(good.RemainingUsefulLife*0.8*10) / 10
	if math.Abs(bad.RemainingUsefulLife-want) > 0.2 {
		t.Fatalf("low-OEE RUL = %v, want about %v (80%% of %v)",
			bad.RemainingUsefulLife, want, good.RemainingUsefulLife)
	}
}

func TestPredictDeterministic(t *testing.T) {
	m := store.Machine{Status: store.MachineRunning, Health: 55, OEE: 72}

	a := NewHeuristicPredictor(NewSource(9), 70).Predict(m)
	b := NewHeuristicPredictor(NewSource(9), 70).Predict(m)

	if a != b {
		t.Fatalf("same seed produced different estimates: %+v vs %+v", a, b)
	}
}
