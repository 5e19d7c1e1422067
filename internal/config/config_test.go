package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.CountdownSeconds != 50 {
		t.Fatalf("CountdownSeconds = %d, want 50", cfg.CountdownSeconds)
	}
	if cfg.CallInterval != 3*time.Second {
		t.Fatalf("CallInterval = %v, want 3s", cfg.CallInterval)
	}
	if cfg.WinResetDelay != 15*time.Second || cfg.ExhaustResetDelay != 5*time.Second {
		t.Fatalf("reset delays = %v/%v, want 15s/5s", cfg.WinResetDelay, cfg.ExhaustResetDelay)
	}
	if cfg.HouseCutPercent != 20 {
		t.Fatalf("HouseCutPercent = %d, want 20", cfg.HouseCutPercent)
	}
	if len(cfg.StakeTiers) == 0 {
		t.Fatal("no default stake tiers")
	}
}

func TestLoadStakeTiers(t *testing.T) {
	t.Setenv("STAKE_TIERS", "5, 10,20")
	cfg := Load()
	want := []int{5, 10, 20}
	if len(cfg.StakeTiers) != len(want) {
		t.Fatalf("StakeTiers = %v, want %v", cfg.StakeTiers, want)
	}
	for i := range want {
		if cfg.StakeTiers[i] != want[i] {
			t.Fatalf("StakeTiers = %v, want %v", cfg.StakeTiers, want)
		}
	}
}

func TestLoadStakeTiersMalformed(t *testing.T) {
	t.Setenv("STAKE_TIERS", "ten,twenty")
	cfg := Load()
	if len(cfg.StakeTiers) != 4 {
		t.Fatalf("malformed tiers did not fall back to defaults: %v", cfg.StakeTiers)
	}
}
