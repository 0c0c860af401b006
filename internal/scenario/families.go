package scenario

import (
	"fmt"
	"math"

	"github.com/MJE43/rtp-audit/internal/games"
	"github.com/MJE43/rtp-audit/internal/sampler"
)

// DefaultLabel names the single scenario of a fixed-table game.
const DefaultLabel = "default"

func uniform(label string, table games.PayoutTable) Scenario {
	return Scenario{Label: label, Table: table, Policy: sampler.Uniform()}
}

// Fixed yields one scenario holding the game's static table.
func Fixed(build func() games.PayoutTable) Generator {
	return GeneratorFunc(func() ([]Scenario, error) {
		return []Scenario{uniform(DefaultLabel, build())}, nil
	})
}

// BinomialChoice enumerates coin counts 1..maxCoins, targets 1..n and every
// face. Labels read coins=<n>_target=<k>_<face>.
func BinomialChoice(maxCoins int, faces []string, build func(n, k int, face string) (games.PayoutTable, error)) Generator {
	return GeneratorFunc(func() ([]Scenario, error) {
		var out []Scenario
		for n := 1; n <= maxCoins; n++ {
			for k := 1; k <= n; k++ {
				for _, face := range faces {
					table, err := build(n, k, face)
					if err != nil {
						return nil, err
					}
					out = append(out, uniform(fmt.Sprintf("coins=%d_target=%d_%s", n, k, face), table))
				}
			}
		}
		return out, nil
	})
}

// Board is one physical configuration of a row-drop game.
type Board struct {
	Label string
	Rows  int
	Build func() (games.PayoutTable, error)
}

// RowDrop yields one binomially sampled scenario per board. A table whose
// length is not Rows+1 is an error.
func RowDrop(boards ...Board) Generator {
	return GeneratorFunc(func() ([]Scenario, error) {
		out := make([]Scenario, 0, len(boards))
		for _, b := range boards {
			table, err := b.Build()
			if err != nil {
				return nil, err
			}
			policy := sampler.Binomial(b.Rows)
			if err := policy.Check(table); err != nil {
				return nil, fmt.Errorf("board %s: %w", b.Label, err)
			}
			out = append(out, Scenario{Label: b.Label, Table: table, Policy: policy})
		}
		return out, nil
	})
}

// IntSweep enumerates from..to inclusive by step. format receives the value.
func IntSweep(from, to, step int, format string, build func(int) (games.PayoutTable, error)) Generator {
	return GeneratorFunc(func() ([]Scenario, error) {
		var out []Scenario
		for v := from; v <= to; v += step {
			table, err := build(v)
			if err != nil {
				return nil, err
			}
			out = append(out, uniform(fmt.Sprintf(format, v), table))
		}
		return out, nil
	})
}

// FloatSweep enumerates start, start+step, ... up to end inclusive. Values
// are computed from the integer step index so no rounding error accumulates.
func FloatSweep(start, end, step float64, format string, build func(float64) (games.PayoutTable, error)) Generator {
	return GeneratorFunc(func() ([]Scenario, error) {
		count := stepCount(start, end, step)
		out := make([]Scenario, 0, count)
		for i := 0; i < count; i++ {
			v := start + float64(i)*step
			table, err := build(v)
			if err != nil {
				return nil, err
			}
			out = append(out, uniform(fmt.Sprintf(format, v), table))
		}
		return out, nil
	})
}

func stepCount(start, end, step float64) int {
	if step <= 0 || end < start {
		return 0
	}
	return int(math.Floor((end-start)/step+1e-9)) + 1
}

// Combinatorial enumerates each level with revealed counts from 0 up to
// min(grid-level, maxRevealed). Tables without a winning slot are dropped.
func Combinatorial(grid int, levels []int, maxRevealed int, build func(level, revealed int) (games.PayoutTable, error)) Generator {
	return GeneratorFunc(func() ([]Scenario, error) {
		var out []Scenario
		for _, level := range levels {
			limit := min(grid-level, maxRevealed)
			for revealed := 0; revealed <= limit; revealed++ {
				table, err := build(level, revealed)
				if err != nil {
					return nil, err
				}
				if !table.HasWin() {
					continue
				}
				out = append(out, uniform(fmt.Sprintf("mines=%d_revealed=%d", level, revealed), table))
			}
		}
		return out, nil
	})
}

// RankBased enumerates every rank with a "hi" scenario when higher ranks
// exist and a "lo" scenario when lower ranks exist. Tables without a winning
// slot are dropped.
func RankBased(ranks int, build func(rank int, hi bool) (games.PayoutTable, error)) Generator {
	return GeneratorFunc(func() ([]Scenario, error) {
		var out []Scenario
		add := func(label string, rank int, hi bool) error {
			table, err := build(rank, hi)
			if err != nil {
				return err
			}
			if table.HasWin() {
				out = append(out, uniform(label, table))
			}
			return nil
		}

		for rank := 0; rank < ranks; rank++ {
			if rank < ranks-1 {
				if err := add(fmt.Sprintf("hi_rank=%d", rank), rank, true); err != nil {
					return nil, err
				}
			}
			if rank > 0 {
				if err := add(fmt.Sprintf("lo_rank=%d", rank), rank, false); err != nil {
					return nil, err
				}
			}
		}
		return out, nil
	})
}

// Selection yields one scenario per label; build receives the label's index.
func Selection(labels []string, build func(i int) (games.PayoutTable, error)) Generator {
	return GeneratorFunc(func() ([]Scenario, error) {
		out := make([]Scenario, 0, len(labels))
		for i, label := range labels {
			table, err := build(i)
			if err != nil {
				return nil, err
			}
			out = append(out, uniform(label, table))
		}
		return out, nil
	})
}
