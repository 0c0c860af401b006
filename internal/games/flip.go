package games

const (
	// FlipRTP is the designed return of the single-coin flip.
	FlipRTP = 0.96
	// FlipV2RTP is the designed return of the multi-coin flip.
	FlipV2RTP = 0.96

	flipPayout     = 1.92
	flipV2MaxCoins = 20
)

// Coin faces a flip bet can name.
const (
	FaceHeads = "heads"
	FaceTails = "tails"
)

// Faces lists the coin faces in enumeration order.
var Faces = []string{FaceHeads, FaceTails}

// FlipTable returns the two-outcome table for a bet on face.
func FlipTable(face string) (PayoutTable, error) {
	switch face {
	case FaceHeads:
		return PayoutTable{flipPayout, 0}, nil
	case FaceTails:
		return PayoutTable{0, flipPayout}, nil
	default:
		return nil, invalid("unknown flip face %q", face)
	}
}

// FlipV2Table returns the table for betting that at least k of n coins land
// on face. Entry m is the outcome "m heads" and is weighted by its binomial
// probability so a uniform draw over the n+1 entries returns FlipV2RTP.
func FlipV2Table(n, k int, face string) (PayoutTable, error) {
	if n < 1 || n > flipV2MaxCoins {
		return nil, invalid("coin count %d outside [1, %d]", n, flipV2MaxCoins)
	}
	if k < 1 || k > n {
		return nil, invalid("target %d outside [1, %d]", k, n)
	}
	if face != FaceHeads && face != FaceTails {
		return nil, invalid("unknown flip face %q", face)
	}

	// P(at least k heads) equals P(at least k tails) for a fair coin.
	p := 0.0
	for m := k; m <= n; m++ {
		p += BinomialPMF(n, m)
	}

	outcomes := n + 1
	house := FlipV2RTP / p
	table := make(PayoutTable, outcomes)

	lo, hi := k, n
	if face == FaceTails {
		lo, hi = 0, n-k
	}
	for m := lo; m <= hi; m++ {
		table[m] = house * float64(outcomes) * BinomialPMF(n, m)
	}

	return table, nil
}
