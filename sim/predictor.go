package sim

import (
	"math"

	"zeroedge/store"
)

// Estimate is the predictor output for one machine.
type Estimate struct {
	RemainingUsefulLife float64 `json:"remaining_useful_life"` // hours
	FailureProbability  float64 `json:"failure_probability"`   // percent
}

// Predictor estimates remaining useful life and failure risk for a machine.
// The heuristic implementation stands in for a trained model; the interface
// is the seam where a real one can be substituted.
type Predictor interface {
	Predict(m store.Machine) Estimate
}

// maxRULHours is the prediction horizon at 100% health.
const maxRULHours = 1000

// lowOEEPenalty is applied to predicted life when OEE runs below the
// configured threshold: inefficient operation wears faster.
const lowOEEPenalty = 0.8

// HeuristicPredictor is a deterministic heuristic over health, OEE, and
// status, with bounded noise from the shared Source.
type HeuristicPredictor struct {
	rng    *Source
	lowOEE float64
}

// NewHeuristicPredictor creates the heuristic predictor. lowOEE is the OEE
// percentage below which the wear penalty applies.
func NewHeuristicPredictor(rng *Source, lowOEE float64) *HeuristicPredictor {
	return &HeuristicPredictor{rng: rng, lowOEE: lowOEE}
}

// Predict is pure apart from draws on the Source. A machine already in
// Error short-circuits before any heuristic or draw.
func (p *HeuristicPredictor) Predict(m store.Machine) Estimate {
	if m.Status == store.MachineError {
		return Estimate{RemainingUsefulLife: 0, FailureProbability: 100}
	}

	rul := m.Health / 100 * maxRULHours
	if m.OEE < p.lowOEE {
		rul *= lowOEEPenalty
	}
	rul *= p.rng.NextFloatRange(0.95, 1.05)

	var prob float64
	switch {
	case m.Health >= 90:
		prob = p.rng.NextFloatRange(0.5, 5)
	case m.Health >= 75:
		prob = p.rng.NextFloatRange(5, 15)
	case m.Health >= 50:
		prob = p.rng.NextFloatRange(15, 40)
	case m.Health >= 25:
		prob = p.rng.NextFloatRange(40, 70)
	default:
		prob = p.rng.NextFloatRange(70, 100)
	}

	return Estimate{
		RemainingUsefulLife: round1(clamp(rul, 0, maxRULHours)),
		FailureProbability:  round1(clamp(prob, 0, 100)),
	}
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
