// Package games computes payout tables for every audited game.
//
// A payout table is a list of multipliers; sampling picks one entry per play
// and pays wager*multiplier. Functions here are pure: the same parameters
// always yield the same table.
package games

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// ErrInvalidParams is returned when game parameters fall outside their valid range.
var ErrInvalidParams = errors.New("invalid game parameters")

// PayoutTable holds non-negative multipliers, one per equally likely outcome.
// Tables are never mutated after construction.
type PayoutTable []float64

// HasWin reports whether any entry pays out.
func (t PayoutTable) HasWin() bool {
	for _, m := range t {
		if m > 0 {
			return true
		}
	}
	return false
}

// Mean is the average multiplier over all entries.
func (t PayoutTable) Mean() float64 {
	if len(t) == 0 {
		return 0
	}
	sum := 0.0
	for _, m := range t {
		sum += m
	}
	return sum / float64(len(t))
}

// WinFraction is the share of entries that pay out.
func (t PayoutTable) WinFraction() float64 {
	if len(t) == 0 {
		return 0
	}
	wins := 0
	for _, m := range t {
		if m > 0 {
			wins++
		}
	}
	return float64(wins) / float64(len(t))
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParams, fmt.Sprintf(format, args...))
}

// round fixes x to the given number of decimal places.
func round(x float64, places int32) float64 {
	return decimal.NewFromFloat(x).Round(places).InexactFloat64()
}

// slotsFor converts a probability into a whole number of slots out of resolution.
func slotsFor(p float64, resolution int) int {
	return int(decimal.NewFromFloat(p).Mul(decimal.NewFromInt(int64(resolution))).Round(0).IntPart())
}

// weighted expands payouts[i] into weights[i] consecutive entries.
func weighted(payouts []float64, weights []int) PayoutTable {
	total := 0
	for _, w := range weights {
		total += w
	}
	table := make(PayoutTable, 0, total)
	for i, p := range payouts {
		for j := 0; j < weights[i]; j++ {
			table = append(table, p)
		}
	}
	return table
}

// winLose builds a table of winSlots entries paying multiplier followed by
// losing entries, size entries in total.
func winLose(size, winSlots int, multiplier float64) PayoutTable {
	table := make(PayoutTable, size)
	for i := 0; i < winSlots && i < size; i++ {
		table[i] = multiplier
	}
	return table
}

// Binomial returns the binomial coefficient C(n, k).
func Binomial(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	c := 1.0
	for i := 0; i < k; i++ {
		c = c * float64(n-i) / float64(i+1)
	}
	return c
}

// BinomialPMF is the probability of exactly k successes in n fair trials.
func BinomialPMF(n, k int) float64 {
	return Binomial(n, k) * math.Pow(0.5, float64(n))
}
