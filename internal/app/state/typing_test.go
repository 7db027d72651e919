package state_test

import (
	"testing"
	"time"

	"github.com/dalemusser/coachhub/internal/app/state"
	"github.com/dalemusser/coachhub/internal/testutil"
)

func waitForTyping(t *testing.T, s *state.Store, groupID string, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(s.TypingIn(groupID)) == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("typing list never reached %d entries: %v", want, s.TypingIn(groupID))
}

func TestSignalTypingExpires(t *testing.T) {
	s := testutil.NewStoreWith(t, state.Options{TypingTTL: 30 * time.Millisecond})
	gid := testutil.SeedGroupClass8

	s.SignalTyping(gid, "Arjun")
	if got := s.TypingIn(gid); len(got) != 1 || got[0] != "Arjun" {
		t.Fatalf("typing list: got %v, want [Arjun]", got)
	}

	waitForTyping(t, s, gid, 0)
}

func TestSignalTypingDeduplicates(t *testing.T) {
	s := testutil.NewStoreWith(t, state.Options{TypingTTL: time.Second})
	gid := testutil.SeedGroupClass8

	s.SignalTyping(gid, "Arjun")
	s.SignalTyping(gid, "Arjun")
	s.SignalTyping(gid, "Kavya")

	got := s.TypingIn(gid)
	if len(got) != 2 {
		t.Fatalf("typing list: got %v, want two distinct names", got)
	}
}

func TestSignalTypingReplacesTimer(t *testing.T) {
	s := testutil.NewStoreWith(t, state.Options{TypingTTL: 60 * time.Millisecond})
	gid := testutil.SeedGroupClass8

	s.SignalTyping(gid, "Arjun")
	time.Sleep(40 * time.Millisecond)
	// Re-signal inside the window: the expiry restarts.
	s.SignalTyping(gid, "Arjun")
	time.Sleep(40 * time.Millisecond)

	if got := s.TypingIn(gid); len(got) != 1 {
		t.Fatalf("indicator expired despite the re-signal: %v", got)
	}
	waitForTyping(t, s, gid, 0)
}

func TestSignalTypingBlankNoOp(t *testing.T) {
	s := testutil.NewStore(t)
	s.SignalTyping("", "Arjun")
	s.SignalTyping(testutil.SeedGroupClass8, "")
	if got := s.TypingIn(testutil.SeedGroupClass8); len(got) != 0 {
		t.Errorf("blank args should no-op, got %v", got)
	}
}
