package games

import "github.com/shopspring/decimal"

const (
	ProgressivePokerRTP = 0.96
	MultiPokerV2RTP     = 0.96
)

// Progressive poker hand classes: three busting classes then pair of jacks
// or better, two pair, trips, straight and flush-or-better. Probabilities are
// percentages.
var (
	progressivePokerPayouts       = []float64{0, 0, 0, 3.6959, 5.5438, 7.3917, 11.0876, 29.5669}
	progressivePokerProbabilities = []string{"30.11", "20.01", "33.31", "8.35", "4.57", "2.03", "1.25", "0.37"}
)

// Multi-hand poker: bust, pair, two pair, trips, straight, flush, full house,
// quads, royal flush, weighted out of 10000 deals.
var (
	multiPokerPayouts = []float64{0, 2, 3, 4, 4, 8, 10, 25, 100}
	multiPokerWeights = []int{7067, 1500, 600, 400, 250, 100, 60, 20, 3}
)

// ProgressivePokerTable converts each hand percentage to slots out of 1000
// (rounding half away from zero) and expands the payouts accordingly.
func ProgressivePokerTable() PayoutTable {
	weights := make([]int, len(progressivePokerProbabilities))
	ten := decimal.NewFromInt(10)
	for i, pct := range progressivePokerProbabilities {
		weights[i] = int(decimal.RequireFromString(pct).Mul(ten).Round(0).IntPart())
	}
	return weighted(progressivePokerPayouts, weights)
}

// MultiPokerV2Table returns the 10000-outcome hand table.
func MultiPokerV2Table() PayoutTable {
	return weighted(multiPokerPayouts, multiPokerWeights)
}
