package games

const (
	// RouletteRTP is the single-zero wheel return.
	RouletteRTP = 0.973

	rouletteNumbers = 37
)

// RouletteBets lists the outside bets in enumeration order.
var RouletteBets = []string{
	"red", "black", "odd", "even", "low", "high",
	"dozen1", "dozen2", "dozen3",
	"column1", "column2", "column3",
}

var rouletteRed = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true, 14: true, 16: true, 18: true,
	19: true, 21: true, 23: true, 25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

// rouletteCovers reports whether number n wins the given outside bet.
// Zero loses every outside bet.
func rouletteCovers(bet string, n int) (bool, error) {
	if n == 0 {
		return false, nil
	}
	switch bet {
	case "red":
		return rouletteRed[n], nil
	case "black":
		return !rouletteRed[n], nil
	case "odd":
		return n%2 == 1, nil
	case "even":
		return n%2 == 0, nil
	case "low":
		return n <= 18, nil
	case "high":
		return n >= 19, nil
	case "dozen1":
		return n <= 12, nil
	case "dozen2":
		return n >= 13 && n <= 24, nil
	case "dozen3":
		return n >= 25, nil
	case "column1":
		return n%3 == 1, nil
	case "column2":
		return n%3 == 2, nil
	case "column3":
		return n%3 == 0, nil
	default:
		return false, invalid("unknown roulette bet %q", bet)
	}
}

// RouletteTable returns the 37-pocket table for an outside bet. Every
// covered pocket pays the fair total return 37/coverage scaled by RouletteRTP.
func RouletteTable(bet string) (PayoutTable, error) {
	covered := make([]bool, rouletteNumbers)
	coverage := 0
	for n := 0; n < rouletteNumbers; n++ {
		ok, err := rouletteCovers(bet, n)
		if err != nil {
			return nil, err
		}
		covered[n] = ok
		if ok {
			coverage++
		}
	}

	payout := float64(rouletteNumbers) / float64(coverage) * RouletteRTP
	table := make(PayoutTable, rouletteNumbers)
	for n, ok := range covered {
		if ok {
			table[n] = payout
		}
	}
	return table, nil
}
