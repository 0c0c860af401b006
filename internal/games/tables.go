package games

// Fixed-table games: a single static table per game.

const (
	SlotsRTP       = 0.94
	BlackjackRTP   = 0.97
	BlackjackV2RTP = 0.97
)

// Reel symbols from rarest to the losing blank, out of 1000 outcomes.
var (
	slotsPayouts = []float64{175.9, 87.95, 35.18, 12.31, 5.28, 2.64, 2.11, 0}
	slotsWeights = []int{1, 1, 2, 5, 15, 80, 120, 776}
)

// Hand outcomes per 100 deals: win, blackjack, push, lose.
var (
	blackjackPayouts = []float64{1.85, 2.30, 1.0, 0}
	blackjackWeights = []int{42, 5, 8, 45}
)

// SlotsTable returns the 1000-outcome reel table.
func SlotsTable() PayoutTable {
	return weighted(slotsPayouts, slotsWeights)
}

// BlackjackTable returns the 100-outcome hand table.
func BlackjackTable() PayoutTable {
	return weighted(blackjackPayouts, blackjackWeights)
}

// BlackjackV2Table returns the second-generation hand table. It lists the
// losing outcomes first but shares the hand odds of BlackjackTable.
func BlackjackV2Table() PayoutTable {
	return weighted(
		[]float64{0, 1.85, 2.30, 1.0},
		[]int{45, 42, 5, 8},
	)
}
