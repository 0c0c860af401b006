package sampler

import (
	"errors"
	"math"
	"testing"

	"github.com/MJE43/rtp-audit/internal/engine"
	"github.com/MJE43/rtp-audit/internal/games"
)

func TestRunUniformExact(t *testing.T) {
	// 0.1 -> index 0, 0.6 -> index 1
	src := engine.NewSequenceSource(0.1, 0.6, 0.6, 0.1)
	res, err := Run(games.PayoutTable{0, 2}, 4, Uniform(), src)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if res.TotalWager != 4 {
		t.Errorf("expected wager 4, got %v", res.TotalWager)
	}
	if res.TotalPayout != 4 {
		t.Errorf("expected payout 4, got %v", res.TotalPayout)
	}
	if res.WinCount != 2 || res.PlayCount != 4 {
		t.Errorf("expected 2 wins of 4 plays, got %d of %d", res.WinCount, res.PlayCount)
	}
	if res.ActualRTP() != 1 {
		t.Errorf("expected RTP 1, got %v", res.ActualRTP())
	}
	if res.WinRate() != 0.5 {
		t.Errorf("expected win rate 0.5, got %v", res.WinRate())
	}
}

func TestRunUniformClampsTopIndex(t *testing.T) {
	// a source returning exactly 1 must not index past the table
	src := engine.NewSequenceSource(1.0)
	res, err := Run(games.PayoutTable{0, 0, 3}, 1, Uniform(), src)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.TotalPayout != 3 {
		t.Errorf("expected last entry to be drawn, got payout %v", res.TotalPayout)
	}
}

func TestRunBinomialExact(t *testing.T) {
	// three flips: two below 0.5 -> two successes -> index 2
	src := engine.NewSequenceSource(0.1, 0.9, 0.2)
	res, err := Run(games.PayoutTable{0, 0, 5, 0}, 1, Binomial(3), src)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.TotalPayout != 5 {
		t.Errorf("expected payout 5 from index 2, got %v", res.TotalPayout)
	}
}

func TestRunZeroWagerGuard(t *testing.T) {
	res, err := Run(games.PayoutTable{1, 2}, 0, Uniform(), engine.NewSource())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.ActualRTP() != 0 || res.WinRate() != 0 {
		t.Errorf("expected zero RTP and win rate for zero plays, got %v and %v", res.ActualRTP(), res.WinRate())
	}
}

func TestRunAllZeroTable(t *testing.T) {
	res, err := Run(make(games.PayoutTable, 10), 1000, Uniform(), engine.NewSource())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.ActualRTP() != 0 || res.WinRate() != 0 {
		t.Errorf("expected zero RTP and win rate, got %v and %v", res.ActualRTP(), res.WinRate())
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name   string
		table  games.PayoutTable
		n      int
		policy Policy
		want   error
	}{
		{"empty table", nil, 10, Uniform(), ErrEmptyTable},
		{"negative trials", games.PayoutTable{1}, -1, Uniform(), ErrInvalidTrials},
		{"row mismatch", games.PayoutTable{1, 1, 1}, 10, Binomial(14), ErrRowMismatch},
		{"zero rows", games.PayoutTable{1}, 10, Binomial(0), ErrRowMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(tt.table, tt.n, tt.policy, engine.NewSource())
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestBinomialShape(t *testing.T) {
	const (
		rows   = 14
		trials = 200000
	)
	policy := Binomial(rows)
	table := make(games.PayoutTable, rows+1)
	src := engine.NewSource()

	sum, sumSq := 0.0, 0.0
	counts := make([]int, rows+1)
	for i := 0; i < trials; i++ {
		idx := index(table, policy, src)
		counts[idx]++
		sum += float64(idx)
		sumSq += float64(idx * idx)
	}

	mean := sum / trials
	variance := sumSq/trials - mean*mean

	if math.Abs(mean-7) > 0.05 {
		t.Errorf("expected mean near 7, got %v", mean)
	}
	if math.Abs(variance-3.5) > 0.1 {
		t.Errorf("expected variance near 3.5, got %v", variance)
	}

	// symmetric around the centre
	for k := 0; k < rows/2; k++ {
		lo, hi := counts[k], counts[rows-k]
		if lo+hi < 20000 {
			continue
		}
		if ratio := float64(lo) / float64(hi); ratio < 0.9 || ratio > 1.1 {
			t.Errorf("expected bucket %d and %d to be balanced, got %d and %d", k, rows-k, lo, hi)
		}
	}
}

func TestVarianceNarrows(t *testing.T) {
	table := games.PayoutTable{0, 0, 0, 0, 0, 0, 0, 0, 0, 9.6}
	src := engine.NewSource()

	spread := func(plays int) float64 {
		const runs = 200
		vals := make([]float64, runs)
		mean := 0.0
		for i := range vals {
			res, err := Run(table, plays, Uniform(), src)
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}
			vals[i] = res.ActualRTP()
			mean += vals[i]
		}
		mean /= runs
		v := 0.0
		for _, x := range vals {
			v += (x - mean) * (x - mean)
		}
		return v / runs
	}

	small, large := spread(100), spread(10000)
	if large >= small {
		t.Errorf("expected variance to shrink with more plays: %v at 100, %v at 10000", small, large)
	}
}

func TestExpected(t *testing.T) {
	rtp, win := Expected(games.PayoutTable{0, 2}, Uniform())
	if rtp != 1 || win != 0.5 {
		t.Errorf("expected (1, 0.5), got (%v, %v)", rtp, win)
	}

	// only the centre bucket of two rows pays
	rtp, win = Expected(games.PayoutTable{0, 4, 0}, Binomial(2))
	if math.Abs(rtp-2) > 1e-12 || math.Abs(win-0.5) > 1e-12 {
		t.Errorf("expected (2, 0.5), got (%v, %v)", rtp, win)
	}

	rtp, win = Expected(nil, Uniform())
	if rtp != 0 || win != 0 {
		t.Errorf("expected zeros for an empty table, got (%v, %v)", rtp, win)
	}
}

func TestPolicyString(t *testing.T) {
	if got := Uniform().String(); got != "uniform" {
		t.Errorf("expected uniform, got %s", got)
	}
	if got := Binomial(12).String(); got != "binomial(12)" {
		t.Errorf("expected binomial(12), got %s", got)
	}
}
