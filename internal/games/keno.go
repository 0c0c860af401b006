package games

const (
	KenoV2RTP = 0.95

	kenoNumbers    = 40
	kenoDrawn      = 10
	KenoMaxPicks   = 10
	kenoResolution = bpsPerWhole
)

// kenoBasePayouts[picks][hits] is the unscaled paytable.
var kenoBasePayouts = map[int][]float64{
	1:  {0, 3},
	2:  {0, 1, 9},
	3:  {0, 1, 2, 16},
	4:  {0, 0.5, 2, 6, 25},
	5:  {0, 0.5, 1, 3, 15, 50},
	6:  {0, 0.5, 1, 2, 3, 30, 75},
	7:  {0, 0.5, 0.5, 1, 6, 12, 36, 100},
	8:  {0, 0.5, 0.5, 1, 2, 4, 20, 80, 500},
	9:  {0, 0.5, 0.5, 1, 1, 5, 10, 50, 200, 1000},
	10: {0, 0, 0.5, 1, 2, 5, 15, 40, 100, 250, 1800},
}

// kenoHitProbability is the hypergeometric chance that exactly hits of picks
// land among the drawn numbers.
func kenoHitProbability(picks, hits int) float64 {
	return Binomial(kenoDrawn, hits) * Binomial(kenoNumbers-kenoDrawn, picks-hits) / Binomial(kenoNumbers, picks)
}

// KenoV2Table returns the table for a ticket with picks selections. Hit counts
// are weighted by their hypergeometric probability over bpsPerWhole slots,
// and the base paytable is scaled so the weighted table returns KenoV2RTP.
func KenoV2Table(picks int) (PayoutTable, error) {
	base, ok := kenoBasePayouts[picks]
	if !ok {
		return nil, invalid("keno picks %d outside [1, %d]", picks, KenoMaxPicks)
	}

	weights := make([]int, len(base))
	assigned := 0
	for hits := 1; hits < len(base); hits++ {
		weights[hits] = slotsFor(kenoHitProbability(picks, hits), kenoResolution)
		assigned += weights[hits]
	}
	// zero hits absorbs the rounding remainder
	weights[0] = kenoResolution - assigned

	raw := 0.0
	for hits, w := range weights {
		raw += float64(w) * base[hits]
	}
	raw /= kenoResolution
	if raw == 0 {
		return nil, invalid("keno picks %d has no paying outcome", picks)
	}
	scale := KenoV2RTP / raw

	payouts := make([]float64, len(base))
	for hits, b := range base {
		payouts[hits] = round(b*scale, 4)
	}
	return weighted(payouts, weights), nil
}
