package games

const (
	DiceRTP   = 0.95
	DiceV2RTP = 0.95

	diceOutcomes = 100
)

// DiceTable returns the 100-outcome table for a roll-under bet.
func DiceTable(rollUnder int) (PayoutTable, error) {
	return diceTable(rollUnder, DiceRTP)
}

// DiceV2Table is DiceTable with the second-generation house edge.
func DiceV2Table(rollUnder int) (PayoutTable, error) {
	return diceTable(rollUnder, DiceV2RTP)
}

func diceTable(rollUnder int, rtp float64) (PayoutTable, error) {
	if rollUnder < 1 || rollUnder > diceOutcomes-1 {
		return nil, invalid("roll under %d outside [1, %d]", rollUnder, diceOutcomes-1)
	}

	winProbability := float64(rollUnder) / diceOutcomes
	multiplier := rtp / winProbability

	return winLose(diceOutcomes, rollUnder, multiplier), nil
}
