package games

import "math"

// Multiplier-target games: the player picks a cash-out multiplier and wins
// when the round reaches it.

const (
	CrashRTP       = 0.96
	LimboV2RTP     = 0.95
	CryptoChartRTP = 0.95

	crashResolution     = 1000
	crashHighResolution = 10000
	crashHighTarget     = 100

	// bpsPerWhole is the outcome resolution of the second-generation games.
	bpsPerWhole = 10000

	cryptoChartBaseProbability = 0.5
	cryptoChartMaxProbability  = 0.9
	cryptoChartMinDifficulty   = 0.1
)

// CrashTable returns the table for cashing out at target.
func CrashTable(target float64) (PayoutTable, error) {
	if !(target > 1) || math.IsInf(target, 0) {
		return nil, invalid("crash target %v must be greater than 1", target)
	}

	resolution := crashResolution
	if target > crashHighTarget {
		resolution = crashHighResolution
	}

	winSlots := int(math.Floor(float64(resolution) / target))
	if winSlots == 0 {
		winSlots = 1
	}

	return winLose(resolution, winSlots, round(target*CrashRTP, 4)), nil
}

// LimboV2Table returns the table for a limbo bet at target.
func LimboV2Table(target float64) (PayoutTable, error) {
	if !(target > 1) || math.IsInf(target, 0) {
		return nil, invalid("limbo target %v must be greater than 1", target)
	}

	winSlots := int(math.Floor(bpsPerWhole / target))
	return winLose(bpsPerWhole, winSlots, target*LimboV2RTP), nil
}

// CryptoChartV2Table returns the table for a chart-rise bet at target. The
// win probability shrinks logarithmically with the target and is clamped to
// [0.05, 0.9].
func CryptoChartV2Table(target float64) (PayoutTable, error) {
	if !(target > 1) || math.IsInf(target, 0) {
		return nil, invalid("chart target %v must be greater than 1", target)
	}

	difficulty := math.Max(cryptoChartMinDifficulty, 1/math.Log(target+1))
	winProbability := math.Min(cryptoChartMaxProbability, cryptoChartBaseProbability*difficulty)

	winSlots := int(math.Floor(bpsPerWhole * winProbability))
	return winLose(bpsPerWhole, winSlots, CryptoChartRTP/winProbability), nil
}
