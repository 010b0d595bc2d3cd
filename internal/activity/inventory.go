package activity

import (
	"maps"
	"slices"

	"petsim/internal/pet"
)

// Inventory counts items by id. The engine never reads it; drops reach it
// through ExplorationCompleted events.
type Inventory map[string]int

// Add credits drops. Non-positive quantities are ignored.
func (inv Inventory) Add(drops []ItemDrop) {
	for _, d := range drops {
		if d.Quantity <= 0 {
			continue
		}
		inv[d.ItemID] += d.Quantity
	}
}

// Collect credits every exploration drop in events and returns the drops it
// found, in order.
func (inv Inventory) Collect(events []pet.Event) []ItemDrop {
	var found []ItemDrop
	for _, ev := range events {
		done, ok := ev.(ExplorationCompleted)
		if !ok {
			continue
		}
		inv.Add(done.Items)
		found = append(found, done.Items...)
	}
	return found
}

// IDs returns the held item ids, sorted.
func (inv Inventory) IDs() []string {
	return slices.Sorted(maps.Keys(inv))
}
