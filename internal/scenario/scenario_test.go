package scenario

import (
	"errors"
	"testing"

	"github.com/MJE43/rtp-audit/internal/catalog"
	"github.com/MJE43/rtp-audit/internal/games"
	"github.com/MJE43/rtp-audit/internal/sampler"
)

func TestDefaultRegistryScenarioCounts(t *testing.T) {
	want := map[string]int{
		"flip":                       2,
		"flip-v2":                    30,
		"slots":                      1,
		"blackjack":                  1,
		"blackjack-v2":               1,
		"progressivepoker":           1,
		"multipoker-v2":              1,
		"plinko":                     2,
		"dice":                       19,
		"dice-v2":                    19,
		"keno-v2":                    10,
		"crash":                      18,
		"limbo-v2":                   18,
		"cryptochartgame-v2":         9,
		"mines":                      25,
		"mines-v2":                   35,
		"hilo":                       24,
		"roulette":                   12,
		"doubleornothing-v2":         3,
		"fancyvirtualhorseracing-v2": 8,
	}

	reg := DefaultRegistry()
	total := 0
	for key, n := range want {
		t.Run(key, func(t *testing.T) {
			scenarios, err := reg.Generate(key)
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}
			if len(scenarios) != n {
				t.Errorf("expected %d scenarios, got %d", n, len(scenarios))
			}
			for _, s := range scenarios {
				if s.GameKey != key {
					t.Errorf("expected game key %s, got %s", key, s.GameKey)
				}
				if !s.Table.HasWin() {
					t.Errorf("scenario %s has no winning slot", s.Label)
				}
			}
		})
		total += n
	}

	if total != 239 {
		t.Errorf("expected 239 scenarios in total, got %d", total)
	}
}

func TestDefaultRegistryCoversCatalog(t *testing.T) {
	reg := DefaultRegistry()
	if missing := reg.Missing(catalog.Default().Keys()); len(missing) != 0 {
		t.Errorf("expected every catalog game to have a generator, missing %v", missing)
	}
}

func TestLabels(t *testing.T) {
	reg := DefaultRegistry()

	tests := []struct {
		key   string
		first string
		last  string
	}{
		{"flip", "heads", "tails"},
		{"flip-v2", "coins=1_target=1_heads", "coins=5_target=5_tails"},
		{"slots", "default", "default"},
		{"plinko", "plinko_normal", "plinko_degen"},
		{"dice", "roll_under=5", "roll_under=95"},
		{"crash", "crash_target=1.1", "crash_target=9.6"},
		{"limbo-v2", "target=1.5", "target=10.0"},
		{"cryptochartgame-v2", "target=2.0", "target=10.0"},
		{"keno-v2", "picks=1", "picks=10"},
		{"mines", "mines=1_revealed=0", "mines=15_revealed=0"},
		{"mines-v2", "mines=1_revealed=0", "mines=20_revealed=4"},
		{"hilo", "hi_rank=0", "lo_rank=12"},
		{"roulette", "red", "column3"},
		{"doubleornothing-v2", "mode=2x", "mode=10x"},
		{"fancyvirtualhorseracing-v2", "horse=1", "horse=8"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			scenarios, err := reg.Generate(tt.key)
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}
			if got := scenarios[0].Label; got != tt.first {
				t.Errorf("expected first label %q, got %q", tt.first, got)
			}
			if got := scenarios[len(scenarios)-1].Label; got != tt.last {
				t.Errorf("expected last label %q, got %q", tt.last, got)
			}
		})
	}
}

func TestCrashLabelsAreExact(t *testing.T) {
	scenarios, err := DefaultRegistry().Generate("crash")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	want := []string{
		"crash_target=1.1", "crash_target=1.6", "crash_target=2.1", "crash_target=2.6",
		"crash_target=3.1", "crash_target=3.6", "crash_target=4.1", "crash_target=4.6",
		"crash_target=5.1", "crash_target=5.6", "crash_target=6.1", "crash_target=6.6",
		"crash_target=7.1", "crash_target=7.6", "crash_target=8.1", "crash_target=8.6",
		"crash_target=9.1", "crash_target=9.6",
	}
	for i, s := range scenarios {
		if s.Label != want[i] {
			t.Errorf("scenario %d: expected %s, got %s", i, want[i], s.Label)
		}
	}
}

func TestEnumerationDeterminism(t *testing.T) {
	reg := DefaultRegistry()
	for _, key := range reg.Keys() {
		a, err := reg.Generate(key)
		if err != nil {
			t.Fatalf("%s: Generate failed: %v", key, err)
		}
		b, err := reg.Generate(key)
		if err != nil {
			t.Fatalf("%s: Generate failed: %v", key, err)
		}
		if len(a) != len(b) {
			t.Fatalf("%s: expected equal lengths, got %d and %d", key, len(a), len(b))
		}
		for i := range a {
			if a[i].Label != b[i].Label {
				t.Errorf("%s: label %d differs: %s vs %s", key, i, a[i].Label, b[i].Label)
			}
			if len(a[i].Table) != len(b[i].Table) {
				t.Errorf("%s: table %d length differs", key, i)
			}
		}
	}
}

func TestPolicies(t *testing.T) {
	reg := DefaultRegistry()

	plinko, _ := reg.Generate("plinko")
	wantRows := map[string]int{"plinko_normal": 14, "plinko_degen": 12}
	for _, s := range plinko {
		if s.Policy.Kind != sampler.KindBinomial {
			t.Errorf("%s: expected binomial policy, got %s", s.Label, s.Policy)
		}
		if s.Policy.Rows != wantRows[s.Label] {
			t.Errorf("%s: expected %d rows, got %d", s.Label, wantRows[s.Label], s.Policy.Rows)
		}
		if len(s.Table) != s.Policy.Rows+1 {
			t.Errorf("%s: expected %d buckets, got %d", s.Label, s.Policy.Rows+1, len(s.Table))
		}
	}

	dice, _ := reg.Generate("dice")
	for _, s := range dice {
		if s.Policy.Kind != sampler.KindUniform {
			t.Errorf("%s: expected uniform policy, got %s", s.Label, s.Policy)
		}
	}
}

func TestUnknownKeyYieldsNothing(t *testing.T) {
	scenarios, err := DefaultRegistry().Generate("baccarat")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(scenarios) != 0 {
		t.Errorf("expected no scenarios, got %d", len(scenarios))
	}
}

func TestMissing(t *testing.T) {
	reg := NewRegistry(map[string]Generator{"a": Fixed(games.SlotsTable)})
	got := reg.Missing([]string{"a", "b", "c"})
	if len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Errorf("expected [b c], got %v", got)
	}
}

func TestFormulaErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	gen := IntSweep(1, 3, 1, "n=%d", func(n int) (games.PayoutTable, error) {
		if n == 2 {
			return nil, boom
		}
		return games.PayoutTable{1}, nil
	})

	reg := NewRegistry(map[string]Generator{"x": gen})
	if _, err := reg.Generate("x"); !errors.Is(err, boom) {
		t.Errorf("expected formula error, got %v", err)
	}
}

func TestRowDropRejectsMismatchedTable(t *testing.T) {
	gen := RowDrop(Board{
		Label: "bad",
		Rows:  14,
		Build: func() (games.PayoutTable, error) { return make(games.PayoutTable, 14), nil },
	})
	if _, err := gen.Generate(); !errors.Is(err, sampler.ErrRowMismatch) {
		t.Errorf("expected ErrRowMismatch, got %v", err)
	}
}

func TestStepCount(t *testing.T) {
	tests := []struct {
		start, end, step float64
		want             int
	}{
		{1.1, 10.0, 0.5, 18},
		{1.5, 10.0, 0.5, 18},
		{2, 10, 1, 9},
		{1, 1, 1, 1},
		{2, 1, 1, 0},
		{1, 2, 0, 0},
	}
	for _, tt := range tests {
		if got := stepCount(tt.start, tt.end, tt.step); got != tt.want {
			t.Errorf("stepCount(%v, %v, %v) = %d, want %d", tt.start, tt.end, tt.step, got, tt.want)
		}
	}
}
