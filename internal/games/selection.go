package games

const (
	DoubleOrNothingRTP = 0.94
	HorseRacingRTP     = 0.95

	horseRacingResolution = 1000
)

type doubleOrNothingMode struct {
	multiplier float64
	outcomes   int
}

var doubleOrNothingModes = map[string]doubleOrNothingMode{
	"2x":  {multiplier: 1.88, outcomes: 2},
	"3x":  {multiplier: 2.82, outcomes: 3},
	"10x": {multiplier: 9.4, outcomes: 10},
}

// DoubleOrNothingModes lists the button modes in enumeration order.
var DoubleOrNothingModes = []string{"2x", "3x", "10x"}

// DoubleOrNothingV2Table returns the table for a mode: one winning outcome
// among the mode's outcome count.
func DoubleOrNothingV2Table(mode string) (PayoutTable, error) {
	m, ok := doubleOrNothingModes[mode]
	if !ok {
		return nil, invalid("unknown double-or-nothing mode %q", mode)
	}
	table := make(PayoutTable, m.outcomes)
	table[m.outcomes-1] = m.multiplier
	return table, nil
}

// Quoted odds for each horse; the field's win probabilities are proportional
// to the inverse odds.
var horseOdds = []float64{10, 8, 6, 4.5, 3.5, 2.8, 2.2, 1.8}

// HorseCount is the size of the racing field.
var HorseCount = len(horseOdds)

// HorseRacingV2Table returns the table for backing horse (1-based).
func HorseRacingV2Table(horse int) (PayoutTable, error) {
	if horse < 1 || horse > len(horseOdds) {
		return nil, invalid("horse %d outside [1, %d]", horse, len(horseOdds))
	}

	total := 0.0
	for _, odds := range horseOdds {
		total += 1 / odds
	}
	p := (1 / horseOdds[horse-1]) / total

	winSlots := slotsFor(p, horseRacingResolution)
	return winLose(horseRacingResolution, winSlots, round(HorseRacingRTP/p, 2)), nil
}
