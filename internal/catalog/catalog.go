// Package catalog holds the set of audited games and their target RTPs.
package catalog

import (
	"errors"
	"fmt"
)

// ErrInvalidDefinition is returned for an empty key or a target outside (0, 1].
var ErrInvalidDefinition = errors.New("invalid game definition")

// GameDefinition pairs a game key with its designed return-to-player.
type GameDefinition struct {
	Key       string  `json:"key"`
	TargetRTP float64 `json:"targetRTP"`
}

// Catalog is an immutable, ordered set of game definitions.
type Catalog struct {
	defs  []GameDefinition
	index map[string]int
}

// New merges the v1 and v2 namespaces. A key present in both keeps its v1
// position and takes the v2 target.
func New(v1, v2 []GameDefinition) (*Catalog, error) {
	c := &Catalog{
		defs:  make([]GameDefinition, 0, len(v1)+len(v2)),
		index: make(map[string]int, len(v1)+len(v2)),
	}

	for _, ns := range [][]GameDefinition{v1, v2} {
		for _, def := range ns {
			if err := validate(def); err != nil {
				return nil, err
			}
			if i, ok := c.index[def.Key]; ok {
				c.defs[i].TargetRTP = def.TargetRTP
				continue
			}
			c.index[def.Key] = len(c.defs)
			c.defs = append(c.defs, def)
		}
	}

	return c, nil
}

// MustNew is like New but panics on an invalid definition.
func MustNew(v1, v2 []GameDefinition) *Catalog {
	c, err := New(v1, v2)
	if err != nil {
		panic(err)
	}
	return c
}

func validate(def GameDefinition) error {
	if def.Key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidDefinition)
	}
	if !(def.TargetRTP > 0 && def.TargetRTP <= 1) {
		return fmt.Errorf("%w: %s target %v outside (0, 1]", ErrInvalidDefinition, def.Key, def.TargetRTP)
	}
	return nil
}

// Lookup returns the target RTP for key. The catalog is closed, so an
// unknown key is a programming error and panics.
func (c *Catalog) Lookup(key string) float64 {
	i, ok := c.index[key]
	if !ok {
		panic(fmt.Sprintf("catalog: unknown game key %q", key))
	}
	return c.defs[i].TargetRTP
}

// Has reports whether key is in the catalog.
func (c *Catalog) Has(key string) bool {
	_, ok := c.index[key]
	return ok
}

// Keys returns the game keys in catalog order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.defs))
	for i, def := range c.defs {
		keys[i] = def.Key
	}
	return keys
}

// Definitions returns a copy of the definitions in catalog order.
func (c *Catalog) Definitions() []GameDefinition {
	out := make([]GameDefinition, len(c.defs))
	copy(out, c.defs)
	return out
}

// Len returns the number of games.
func (c *Catalog) Len() int {
	return len(c.defs)
}
