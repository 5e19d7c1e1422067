package room

import (
	"context"
	"testing"
)

type nopSettler struct{}

func (nopSettler) Settle(context.Context, SettleRequest) error { return nil }

func TestRegistryFixedTiers(t *testing.T) {
	reg, err := NewRegistry([]int{50, 10, 25}, testOptions(), nopSettler{})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	for _, stake := range []int{10, 25, 50} {
		r, ok := reg.Get(stake)
		if !ok {
			t.Fatalf("tier %d missing", stake)
		}
		if r.Stake != stake {
			t.Fatalf("room stake = %d, want %d", r.Stake, stake)
		}
	}
	if _, ok := reg.Get(999); ok {
		t.Fatal("unknown tier resolved to a room")
	}

	tiers := reg.Tiers()
	want := []int{10, 25, 50}
	for i := range want {
		if tiers[i] != want[i] {
			t.Fatalf("tiers = %v, want %v", tiers, want)
		}
	}
}

func TestRegistryRejectsBadTiers(t *testing.T) {
	if _, err := NewRegistry(nil, testOptions(), nopSettler{}); err == nil {
		t.Fatal("empty tier list accepted")
	}
	if _, err := NewRegistry([]int{10, 10}, testOptions(), nopSettler{}); err == nil {
		t.Fatal("duplicate tier accepted")
	}
	if _, err := NewRegistry([]int{0}, testOptions(), nopSettler{}); err == nil {
		t.Fatal("non-positive tier accepted")
	}
}

func TestRegistrySnapshots(t *testing.T) {
	reg, err := NewRegistry([]int{10, 25}, testOptions(), nopSettler{})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	reg.SetBroadcaster(newFakeBroadcaster())

	r, _ := reg.Get(10)
	r.Join("u1", "alice", "c1")

	snaps := reg.Snapshots()
	if len(snaps) != 2 {
		t.Fatalf("got %d snapshots, want 2", len(snaps))
	}
	if snaps[0].Stake != 10 || snaps[0].Players != 1 {
		t.Fatalf("snapshot[0] = %+v", snaps[0])
	}
	if snaps[1].Stake != 25 || snaps[1].Players != 0 {
		t.Fatalf("snapshot[1] = %+v", snaps[1])
	}
}
