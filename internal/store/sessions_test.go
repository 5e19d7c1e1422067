package store

import (
	"sort"
	"testing"
)

func TestSessionRefcounting(t *testing.T) {
	s := NewSessionStore()
	s.Add("u1", "c1")
	s.Add("u1", "c2")
	s.Add("u2", "c3")

	if got := s.OnlineUsers(); got != 2 {
		t.Fatalf("online users = %d, want 2", got)
	}

	conns := s.Connections("u1")
	sort.Strings(conns)
	if len(conns) != 2 || conns[0] != "c1" || conns[1] != "c2" {
		t.Fatalf("u1 connections = %v", conns)
	}

	// Dropping one tab keeps the user online.
	if online := s.Remove("u1", "c1"); !online {
		t.Fatal("u1 reported offline with a live connection left")
	}
	if online := s.Remove("u1", "c2"); online {
		t.Fatal("u1 reported online with no connections left")
	}
	if got := s.Connections("u1"); got != nil {
		t.Fatalf("u1 connections after removal = %v", got)
	}
	if got := s.OnlineUsers(); got != 1 {
		t.Fatalf("online users = %d, want 1", got)
	}
}

func TestSessionRemoveUnknown(t *testing.T) {
	s := NewSessionStore()
	if online := s.Remove("nobody", "c1"); online {
		t.Fatal("unknown user reported online")
	}
}
