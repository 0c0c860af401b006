package games

import "math"

const (
	// PlinkoRTP is the designed return of both plinko boards.
	PlinkoRTP = 0.95

	// Board configurations accepted by PlinkoRows and PlinkoTable.
	PlinkoModeNormal = "normal"
	PlinkoModeDegen  = "degen"

	plinkoNormalRows = 14
	plinkoDegenRows  = 12

	plinkoNormalPow    = 1.8
	plinkoDegenPow     = 2.2
	plinkoNormalOffset = 0.2
	plinkoDegenOffset  = 0.4
	plinkoDegenEdge    = 2.5
)

// PlinkoModes lists the board configurations in enumeration order.
var PlinkoModes = []string{PlinkoModeNormal, PlinkoModeDegen}

// PlinkoRows returns the number of peg rows for mode.
func PlinkoRows(mode string) (int, error) {
	switch mode {
	case PlinkoModeNormal:
		return plinkoNormalRows, nil
	case PlinkoModeDegen:
		return plinkoDegenRows, nil
	default:
		return 0, invalid("unknown plinko mode %q", mode)
	}
}

// PlinkoTable returns the bucket multipliers for mode. The table has one
// bucket per possible right-bounce count, so len == rows+1. Multipliers grow
// with distance from the centre and are scaled so the binomially weighted
// return is PlinkoRTP before rounding to two places.
func PlinkoTable(mode string) (PayoutTable, error) {
	rows, err := PlinkoRows(mode)
	if err != nil {
		return nil, err
	}

	pow, offset := plinkoNormalPow, plinkoNormalOffset
	if mode == PlinkoModeDegen {
		pow, offset = plinkoDegenPow, plinkoDegenOffset
	}

	center := float64(rows) / 2
	raw := make([]float64, rows+1)
	for i := range raw {
		d := math.Abs(float64(i) - center)
		raw[i] = 1 + math.Pow(d+offset, pow)
	}
	if mode == PlinkoModeDegen {
		raw[rows] *= plinkoDegenEdge
	}

	expected := 0.0
	for i, w := range raw {
		expected += w * BinomialPMF(rows, i)
	}
	scale := PlinkoRTP / expected

	table := make(PayoutTable, rows+1)
	for i, w := range raw {
		table[i] = round(w*scale, 2)
	}
	return table, nil
}
