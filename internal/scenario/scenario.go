// Package scenario enumerates the parameterizations audited for each game.
package scenario

import (
	"sort"

	"github.com/MJE43/rtp-audit/internal/games"
	"github.com/MJE43/rtp-audit/internal/sampler"
)

// Scenario is one concrete parameterization of a game with its payout table.
type Scenario struct {
	GameKey string            `json:"game"`
	Label   string            `json:"scenario"`
	Table   games.PayoutTable `json:"-"`
	Policy  sampler.Policy    `json:"policy"`
}

// Generator produces the scenarios of one game. Output order is
// deterministic and a formula error aborts generation.
type Generator interface {
	Generate() ([]Scenario, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func() ([]Scenario, error)

// Generate calls f.
func (f GeneratorFunc) Generate() ([]Scenario, error) {
	return f()
}

// Registry maps game keys to their generators. It is built once and never
// modified.
type Registry struct {
	generators map[string]Generator
	keys       []string
}

// NewRegistry copies generators into a new Registry.
func NewRegistry(generators map[string]Generator) *Registry {
	r := &Registry{
		generators: make(map[string]Generator, len(generators)),
		keys:       make([]string, 0, len(generators)),
	}
	for key, g := range generators {
		r.generators[key] = g
		r.keys = append(r.keys, key)
	}
	sort.Strings(r.keys)
	return r
}

// Generate returns the scenarios for key with GameKey set on each. A key
// without a generator yields no scenarios and no error.
func (r *Registry) Generate(key string) ([]Scenario, error) {
	g, ok := r.generators[key]
	if !ok {
		return nil, nil
	}

	scenarios, err := g.Generate()
	if err != nil {
		return nil, err
	}
	for i := range scenarios {
		scenarios[i].GameKey = key
	}
	return scenarios, nil
}

// Has reports whether key has a generator.
func (r *Registry) Has(key string) bool {
	_, ok := r.generators[key]
	return ok
}

// Keys returns the registered keys in sorted order.
func (r *Registry) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Missing returns the keys from catalogKeys that have no generator, in input order.
func (r *Registry) Missing(catalogKeys []string) []string {
	var missing []string
	for _, key := range catalogKeys {
		if !r.Has(key) {
			missing = append(missing, key)
		}
	}
	return missing
}
