package scenario

import (
	"fmt"

	"github.com/MJE43/rtp-audit/internal/games"
)

const (
	// MinesRevealCap bounds the revealed-tile sweep of both mines boards.
	// Every count from 0 to the cap is enumerated.
	MinesRevealCap = 5

	flipV2MaxCoins = 5
)

// DefaultRegistry wires every catalog game to its generator.
func DefaultRegistry() *Registry {
	return NewRegistry(map[string]Generator{
		"flip": Selection(games.Faces, func(i int) (games.PayoutTable, error) {
			return games.FlipTable(games.Faces[i])
		}),
		"flip-v2": BinomialChoice(flipV2MaxCoins, games.Faces, games.FlipV2Table),

		"slots":            Fixed(games.SlotsTable),
		"blackjack":        Fixed(games.BlackjackTable),
		"blackjack-v2":     Fixed(games.BlackjackV2Table),
		"progressivepoker": Fixed(games.ProgressivePokerTable),
		"multipoker-v2":    Fixed(games.MultiPokerV2Table),

		"plinko": RowDrop(plinkoBoards()...),

		"dice":               IntSweep(5, 95, 5, "roll_under=%d", games.DiceTable),
		"dice-v2":            IntSweep(5, 95, 5, "roll_under=%d", games.DiceV2Table),
		"keno-v2":            IntSweep(1, games.KenoMaxPicks, 1, "picks=%d", games.KenoV2Table),
		"crash":              FloatSweep(1.1, 10.0, 0.5, "crash_target=%.1f", games.CrashTable),
		"limbo-v2":           FloatSweep(1.5, 10.0, 0.5, "target=%.1f", games.LimboV2Table),
		"cryptochartgame-v2": FloatSweep(2, 10, 1, "target=%.1f", games.CryptoChartV2Table),

		"mines":    Combinatorial(games.MinesGridSize, games.MinesLevels, MinesRevealCap, games.MinesTable),
		"mines-v2": Combinatorial(games.MinesV2GridSize, games.MinesV2Levels, MinesRevealCap, games.MinesV2Table),

		"hilo": RankBased(games.HiloRanks, games.HiloTable),

		"roulette": Selection(games.RouletteBets, func(i int) (games.PayoutTable, error) {
			return games.RouletteTable(games.RouletteBets[i])
		}),
		"doubleornothing-v2": Selection(prefixed("mode=", games.DoubleOrNothingModes), func(i int) (games.PayoutTable, error) {
			return games.DoubleOrNothingV2Table(games.DoubleOrNothingModes[i])
		}),
		"fancyvirtualhorseracing-v2": Selection(horseLabels(), func(i int) (games.PayoutTable, error) {
			return games.HorseRacingV2Table(i + 1)
		}),
	})
}

func plinkoBoards() []Board {
	boards := make([]Board, 0, len(games.PlinkoModes))
	for _, mode := range games.PlinkoModes {
		rows, err := games.PlinkoRows(mode)
		if err != nil {
			panic(err)
		}
		boards = append(boards, Board{
			Label: "plinko_" + mode,
			Rows:  rows,
			Build: func() (games.PayoutTable, error) { return games.PlinkoTable(mode) },
		})
	}
	return boards
}

func prefixed(prefix string, values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = prefix + v
	}
	return out
}

func horseLabels() []string {
	labels := make([]string, games.HorseCount)
	for i := range labels {
		labels[i] = fmt.Sprintf("horse=%d", i+1)
	}
	return labels
}
