package audit

import (
	"math"

	"github.com/MJE43/rtp-audit/internal/sampler"
	"github.com/MJE43/rtp-audit/internal/scenario"
)

const (
	DefaultTolerance = 0.2
	DefaultEpsilon   = 1e-4
)

// VerdictStatus is the pass/fail outcome of one scenario.
type VerdictStatus string

const (
	VerdictPass VerdictStatus = "pass"
	VerdictFail VerdictStatus = "fail"
)

// Verdict is the evaluation of one scenario's sampled return.
type Verdict struct {
	Game            string        `json:"game"`
	Scenario        string        `json:"scenario"`
	TargetRTP       float64       `json:"targetRTP"`
	ActualRTP       float64       `json:"actualRTP"`
	ExpectedRTP     float64       `json:"expectedRTP"`
	WinRate         float64       `json:"winRate"`
	Deviation       float64       `json:"deviation"`
	WithinTolerance bool          `json:"withinTolerance"`
	Status          VerdictStatus `json:"status"`
}

// TolerancePolicy bounds the allowed gap between sampled and target RTP.
// The band is wide on purpose: a single run over a skewed table is noisy.
type TolerancePolicy struct {
	Tolerance float64
	Epsilon   float64
}

// DefaultTolerancePolicy returns the ±0.2 band with a 1e-4 float margin.
func DefaultTolerancePolicy() TolerancePolicy {
	return TolerancePolicy{Tolerance: DefaultTolerance, Epsilon: DefaultEpsilon}
}

// Within reports whether deviation is inside the band.
func (p TolerancePolicy) Within(deviation float64) bool {
	return deviation <= p.Tolerance+p.Epsilon
}

// Evaluate classifies a sampled result against target.
func (p TolerancePolicy) Evaluate(s scenario.Scenario, res sampler.Result, target float64) Verdict {
	actual := res.ActualRTP()
	deviation := math.Abs(actual - target)
	within := p.Within(deviation)
	expected, _ := sampler.Expected(s.Table, s.Policy)

	status := VerdictFail
	if within {
		status = VerdictPass
	}

	return Verdict{
		Game:            s.GameKey,
		Scenario:        s.Label,
		TargetRTP:       target,
		ActualRTP:       actual,
		ExpectedRTP:     expected,
		WinRate:         res.WinRate(),
		Deviation:       deviation,
		WithinTolerance: within,
		Status:          status,
	}
}
