package games

const (
	// MinesRTP and MinesV2RTP are the designed returns of the two boards.
	MinesRTP   = 0.94
	MinesV2RTP = 0.96

	// MinesGridSize and MinesV2GridSize are the tile counts of the 4x4 and
	// 5x5 boards.
	MinesGridSize   = 16
	MinesV2GridSize = 25

	minesV2Resolution = bpsPerWhole
)

// MinesLevels are the selectable mine counts on the 4x4 board.
var MinesLevels = []int{1, 3, 5, 10, 15}

// MinesV2Levels are the selectable mine counts on the 5x5 board.
var MinesV2Levels = []int{1, 3, 5, 10, 15, 20}

// MinesTable returns the table for the next reveal on the 4x4 board after
// revealed safe tiles. Once no safe tile remains the table has no win.
func MinesTable(mines, revealed int) (PayoutTable, error) {
	if err := checkMines(MinesGridSize, mines, revealed); err != nil {
		return nil, err
	}

	remaining := MinesGridSize - mines - revealed
	if remaining <= 0 {
		return make(PayoutTable, MinesGridSize), nil
	}

	multiplier := round(float64(MinesGridSize)/float64(remaining)*MinesRTP, 4)
	return winLose(MinesGridSize, remaining, multiplier), nil
}

// MinesV2Table returns the table for cashing out after revealed safe tiles on
// the 5x5 board. The survival probability is quantized to bpsPerWhole slots
// and the multiplier is set so the quantized table returns MinesV2RTP. When
// the probability rounds to zero slots the table has no win.
func MinesV2Table(mines, revealed int) (PayoutTable, error) {
	if err := checkMines(MinesV2GridSize, mines, revealed); err != nil {
		return nil, err
	}

	safe := MinesV2GridSize - mines
	prob := 1.0
	for i := 0; i < revealed; i++ {
		prob *= float64(safe-i) / float64(MinesV2GridSize-i)
	}

	winSlots := slotsFor(prob, minesV2Resolution)
	if winSlots == 0 {
		return make(PayoutTable, minesV2Resolution), nil
	}

	multiplier := round(MinesV2RTP*minesV2Resolution/float64(winSlots), 4)
	return winLose(minesV2Resolution, winSlots, multiplier), nil
}

func checkMines(grid, mines, revealed int) error {
	if mines < 1 || mines >= grid {
		return invalid("mine count %d outside [1, %d]", mines, grid-1)
	}
	if revealed < 0 || revealed > grid-mines {
		return invalid("revealed %d outside [0, %d]", revealed, grid-mines)
	}
	return nil
}
