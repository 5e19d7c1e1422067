package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries everything the engine reads from the environment.
type Config struct {
	HTTPAddr string
	PGDSN    string

	// StakeTiers is the fixed set of room wagers; one room exists per tier
	// for the whole process lifetime.
	StakeTiers []int

	CountdownSeconds  int
	CallInterval      time.Duration
	WinResetDelay     time.Duration
	ExhaustResetDelay time.Duration

	// HouseCutPercent is the share of the pot kept by the house.
	HouseCutPercent int
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInts(key string, def []int) []int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []int
	for _, part := range strings.Split(v, ",") {
		i, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || i <= 0 {
			return def
		}
		out = append(out, i)
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func Load() Config {
	return Config{
		HTTPAddr:          getenvStr("HTTP_ADDR", ":5000"),
		PGDSN:             getenvStr("PG_DSN", ""),
		StakeTiers:        getenvInts("STAKE_TIERS", []int{10, 25, 50, 100}),
		CountdownSeconds:  getenvInt("COUNTDOWN_SECONDS", 50),
		CallInterval:      time.Duration(getenvInt("CALL_INTERVAL_SECONDS", 3)) * time.Second,
		WinResetDelay:     time.Duration(getenvInt("WIN_RESET_SECONDS", 15)) * time.Second,
		ExhaustResetDelay: time.Duration(getenvInt("EXHAUST_RESET_SECONDS", 5)) * time.Second,
		HouseCutPercent:   getenvInt("HOUSE_CUT_PERCENT", 20),
	}
}
