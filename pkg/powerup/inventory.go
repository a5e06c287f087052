// Package powerup tracks the player's power-up inventory, the power-up bound
// to the current level, and the in-level effects of each power-up.
package powerup

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/opd-ai/go-slingshot/pkg/validation"
)

// Type identifies a power-up
type Type string

const (
	Magnet    Type = "magnet"
	SplitShot Type = "split_shot"
)

// Types lists every known power-up in display order
var Types = []Type{Magnet, SplitShot}

var (
	// ErrNotOwned is returned when using a power-up the inventory has none of
	ErrNotOwned = errors.New("power-up not owned")
	// ErrUnknown is returned for names that are not a power-up type
	ErrUnknown = errors.New("unknown power-up")
)

// Parse validates and normalizes a power-up name
func Parse(name string) (Type, error) {
	allowed := make([]string, len(Types))
	for i, t := range Types {
		allowed[i] = string(t)
	}
	normalized, err := validation.ValidateOneOf("power-up", name, allowed)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnknown, err)
	}
	return Type(normalized), nil
}

// Inventory counts owned power-ups. It is not safe for concurrent use.
type Inventory struct {
	counts map[Type]int
}

// NewInventory creates an inventory holding starting. Unknown or non-positive
// entries are ignored.
func NewInventory(starting map[string]int) *Inventory {
	inv := &Inventory{counts: make(map[Type]int)}
	for name, count := range starting {
		t, err := Parse(name)
		if err != nil || count <= 0 {
			continue
		}
		inv.counts[t] += count
	}
	return inv
}

// Add puts one power-up of type t into the inventory
func (inv *Inventory) Add(t Type) {
	inv.counts[t]++
}

// Use takes one power-up of type t out of the inventory
func (inv *Inventory) Use(t Type) error {
	if inv.counts[t] <= 0 {
		return fmt.Errorf("%w: %s", ErrNotOwned, t)
	}
	inv.counts[t]--
	return nil
}

// Count returns how many power-ups of type t are owned
func (inv *Inventory) Count(t Type) int {
	return inv.counts[t]
}

// HasAny reports whether any power-up is owned
func (inv *Inventory) HasAny() bool {
	for _, count := range inv.counts {
		if count > 0 {
			return true
		}
	}
	return false
}

// Snapshot returns the counts keyed by power-up name, for persistence
func (inv *Inventory) Snapshot() map[string]int {
	snapshot := make(map[string]int, len(inv.counts))
	for t, count := range inv.counts {
		if count > 0 {
			snapshot[string(t)] = count
		}
	}
	return snapshot
}

// Owned returns the owned power-up types, sorted
func (inv *Inventory) Owned() []Type {
	owned := slices.Collect(maps.Keys(inv.counts))
	owned = slices.DeleteFunc(owned, func(t Type) bool { return inv.counts[t] <= 0 })
	slices.Sort(owned)
	return owned
}
