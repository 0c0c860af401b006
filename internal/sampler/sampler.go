// Package sampler estimates the return of a payout table by Monte Carlo play.
package sampler

import (
	"errors"
	"fmt"

	"github.com/MJE43/rtp-audit/internal/engine"
	"github.com/MJE43/rtp-audit/internal/games"
)

// Errors returned by Run and Policy.Check.
var (
	ErrEmptyTable    = errors.New("payout table is empty")
	ErrRowMismatch   = errors.New("payout table length does not match rows+1")
	ErrInvalidTrials = errors.New("trial count must not be negative")
)

// Kind selects how an outcome index is drawn.
type Kind string

// Sampling kinds.
const (
	KindUniform  Kind = "uniform"
	KindBinomial Kind = "binomial"
)

// Policy is the sampling rule for one scenario.
type Policy struct {
	Kind Kind `json:"kind"`
	// Rows is the number of fair coin flips per draw for KindBinomial.
	Rows int `json:"rows,omitempty"`
}

// Uniform draws every table index with equal probability.
func Uniform() Policy {
	return Policy{Kind: KindUniform}
}

// Binomial draws the number of successes over rows fair flips, modelling a
// ball dropping through rows of pegs into rows+1 buckets.
func Binomial(rows int) Policy {
	return Policy{Kind: KindBinomial, Rows: rows}
}

func (p Policy) String() string {
	if p.Kind == KindBinomial {
		return fmt.Sprintf("binomial(%d)", p.Rows)
	}
	return string(KindUniform)
}

// Check reports whether table can be sampled under p.
func (p Policy) Check(table games.PayoutTable) error {
	if len(table) == 0 {
		return ErrEmptyTable
	}
	if p.Kind == KindBinomial && (p.Rows < 1 || len(table) != p.Rows+1) {
		return fmt.Errorf("%w: %d entries for %d rows", ErrRowMismatch, len(table), p.Rows)
	}
	return nil
}

// Result accumulates the outcome of n plays at a wager of 1.
type Result struct {
	TotalWager  float64 `json:"totalWager"`
	TotalPayout float64 `json:"totalPayout"`
	WinCount    int64   `json:"winCount"`
	PlayCount   int64   `json:"playCount"`
}

// ActualRTP is payout over wager, 0 when nothing was wagered.
func (r Result) ActualRTP() float64 {
	return engine.SafeDiv(r.TotalPayout, r.TotalWager)
}

// WinRate is the share of plays that paid out, 0 for zero plays.
func (r Result) WinRate() float64 {
	return engine.SafeDiv(float64(r.WinCount), float64(r.PlayCount))
}

// Run plays n rounds against table, drawing indices from src under policy.
func Run(table games.PayoutTable, n int, policy Policy, src engine.Source) (Result, error) {
	if n < 0 {
		return Result{}, ErrInvalidTrials
	}
	if err := policy.Check(table); err != nil {
		return Result{}, err
	}

	const wager = 1.0
	var res Result
	for i := 0; i < n; i++ {
		idx := index(table, policy, src)
		payout := table[idx] * wager

		res.TotalWager += wager
		res.TotalPayout += payout
		if payout > 0 {
			res.WinCount++
		}
	}
	res.PlayCount = int64(n)

	return res, nil
}

func index(table games.PayoutTable, policy Policy, src engine.Source) int {
	if policy.Kind == KindBinomial {
		successes := 0
		for i := 0; i < policy.Rows; i++ {
			if src.Float64() < 0.5 {
				successes++
			}
		}
		return successes
	}

	idx := int(src.Float64() * float64(len(table)))
	if idx >= len(table) {
		idx = len(table) - 1
	}
	return idx
}

// Expected returns the analytic return and win rate of table under policy.
// It returns zeros for a table that cannot be sampled.
func Expected(table games.PayoutTable, policy Policy) (rtp, winRate float64) {
	if policy.Check(table) != nil {
		return 0, 0
	}

	if policy.Kind != KindBinomial {
		return table.Mean(), table.WinFraction()
	}

	for i, m := range table {
		p := games.BinomialPMF(policy.Rows, i)
		rtp += m * p
		if m > 0 {
			winRate += p
		}
	}
	return rtp, winRate
}
