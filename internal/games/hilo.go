package games

const (
	HiloRTP   = 0.95
	HiloRanks = 13
)

// HiloTable returns the table for guessing whether the next card ranks
// higher (hi) or lower than rank. Ranks run from 0 (ace) to 12 (king).
func HiloTable(rank int, hi bool) (PayoutTable, error) {
	if rank < 0 || rank >= HiloRanks {
		return nil, invalid("rank %d outside [0, %d]", rank, HiloRanks-1)
	}

	winning := rank
	if hi {
		winning = HiloRanks - rank - 1
	}

	table := make(PayoutTable, HiloRanks)
	if winning == 0 {
		return table, nil
	}

	multiplier := round(float64(HiloRanks)/float64(winning)*HiloRTP, 4)
	if hi {
		for i := rank + 1; i < HiloRanks; i++ {
			table[i] = multiplier
		}
	} else {
		for i := 0; i < rank; i++ {
			table[i] = multiplier
		}
	}

	return table, nil
}
