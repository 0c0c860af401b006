package audit

import (
	"math"
	"time"

	"github.com/MJE43/rtp-audit/internal/engine"
)

// Status is the overall health of an audit run.
type Status string

const (
	StatusHealthy  Status = "healthy"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
)

// Severity orders statuses from healthy (0) to critical (2).
func (s Status) Severity() int {
	switch s {
	case StatusCritical:
		return 2
	case StatusWarning:
		return 1
	default:
		return 0
	}
}

const (
	DefaultWarningAbove  = 10
	DefaultCriticalAbove = 50
)

// StatusPolicy maps a failure count to a Status. Thresholds are strict:
// failures must exceed them.
type StatusPolicy struct {
	WarningAbove  int
	CriticalAbove int
}

// DefaultStatusPolicy returns warning above 10 failures, critical above 50.
func DefaultStatusPolicy() StatusPolicy {
	return StatusPolicy{WarningAbove: DefaultWarningAbove, CriticalAbove: DefaultCriticalAbove}
}

// Classify returns the status for failures.
func (p StatusPolicy) Classify(failures int) Status {
	switch {
	case failures > p.CriticalAbove:
		return StatusCritical
	case failures > p.WarningAbove:
		return StatusWarning
	default:
		return StatusHealthy
	}
}

// GameSummary aggregates the verdicts of one game.
type GameSummary struct {
	AvgRTP         float64 `json:"avgRTP"`
	MinRTP         float64 `json:"minRTP"`
	MaxRTP         float64 `json:"maxRTP"`
	AvgWinRate     float64 `json:"avgWinRate"`
	OutOfTolerance int     `json:"outOfTolerance"`
	TotalScenarios int     `json:"totalScenarios"`
}

// Report is the result of one audit run.
type Report struct {
	RunID            string                 `json:"runId"`
	Results          []Verdict              `json:"results"`
	Summary          map[string]GameSummary `json:"summary"`
	Timestamp        time.Time              `json:"timestamp"`
	TotalTests       int64                  `json:"totalTests"`
	TotalFailures    int                    `json:"totalFailures"`
	OverallStatus    Status                 `json:"overallStatus"`
	PlaysPerScenario int                    `json:"playsPerScenario"`
	DurationMs       int64                  `json:"durationMs"`
}

// Summarize folds verdicts into a GameSummary. No verdicts gives all zeros.
func Summarize(verdicts []Verdict) GameSummary {
	if len(verdicts) == 0 {
		return GameSummary{}
	}

	s := GameSummary{
		MinRTP:         math.Inf(1),
		MaxRTP:         math.Inf(-1),
		TotalScenarios: len(verdicts),
	}
	sumRTP, sumWin := 0.0, 0.0
	for _, v := range verdicts {
		sumRTP += v.ActualRTP
		sumWin += v.WinRate
		s.MinRTP = math.Min(s.MinRTP, v.ActualRTP)
		s.MaxRTP = math.Max(s.MaxRTP, v.ActualRTP)
		if !v.WithinTolerance {
			s.OutOfTolerance++
		}
	}

	n := float64(len(verdicts))
	s.AvgRTP = engine.SafeDiv(sumRTP, n)
	s.AvgWinRate = engine.SafeDiv(sumWin, n)
	return s
}

// Aggregate builds a report over verdicts. Every key in gameKeys gets a
// summary, including games that produced no scenarios.
func Aggregate(gameKeys []string, verdicts []Verdict, plays int, policy StatusPolicy) *Report {
	byGame := make(map[string][]Verdict, len(gameKeys))
	for _, v := range verdicts {
		byGame[v.Game] = append(byGame[v.Game], v)
	}

	summary := make(map[string]GameSummary, len(gameKeys))
	failures := 0
	for _, key := range gameKeys {
		s := Summarize(byGame[key])
		summary[key] = s
		failures += s.OutOfTolerance
	}

	results := verdicts
	if results == nil {
		results = []Verdict{}
	}

	return &Report{
		Results:          results,
		Summary:          summary,
		TotalTests:       int64(plays) * int64(len(verdicts)),
		TotalFailures:    failures,
		OverallStatus:    policy.Classify(failures),
		PlaysPerScenario: plays,
	}
}
