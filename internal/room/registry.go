package room

import (
	"fmt"
	"sort"
)

// Registry holds the fixed set of rooms, one per configured stake tier.
// It is built once at startup and never mutated afterwards, so lookups
// need no locking.
type Registry struct {
	rooms map[int]*Room
	tiers []int
}

func NewRegistry(tiers []int, opts Options, settler Settler) (*Registry, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("no stake tiers configured")
	}
	reg := &Registry{rooms: make(map[int]*Room, len(tiers))}
	for _, stake := range tiers {
		if stake <= 0 {
			return nil, fmt.Errorf("invalid stake tier %d", stake)
		}
		if _, dup := reg.rooms[stake]; dup {
			return nil, fmt.Errorf("duplicate stake tier %d", stake)
		}
		reg.rooms[stake] = New(stake, opts, settler)
		reg.tiers = append(reg.tiers, stake)
	}
	sort.Ints(reg.tiers)
	return reg, nil
}

// SetBroadcaster wires the transport into every room.
func (reg *Registry) SetBroadcaster(bc Broadcaster) {
	for _, r := range reg.rooms {
		r.SetBroadcaster(bc)
	}
}

// Get returns the room for a stake tier.
func (reg *Registry) Get(stake int) (*Room, bool) {
	r, ok := reg.rooms[stake]
	return r, ok
}

// Tiers returns the configured stakes in ascending order.
func (reg *Registry) Tiers() []int {
	return append([]int(nil), reg.tiers...)
}

// Snapshots returns one snapshot per room, ordered by stake.
func (reg *Registry) Snapshots() []Snapshot {
	out := make([]Snapshot, 0, len(reg.tiers))
	for _, stake := range reg.tiers {
		out = append(out, reg.rooms[stake].Snapshot())
	}
	return out
}
