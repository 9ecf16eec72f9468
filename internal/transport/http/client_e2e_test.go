package http

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/codepairhq/codepair-server/internal/client"
)

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

// Two real session mirrors against a live server: the newcomer is caught up
// by an existing member's snapshot, edits flow one way only, comments are
// delivered everywhere exactly once.
func TestClientSessionsEndToEnd(t *testing.T) {
	ts := startTestServer(t)
	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s1Docs := make(chan string, 8)
	s1, err := client.Dial(ctx, wsURL, "r1", "P1", client.Callbacks{
		OnDocument: func(code string) { s1Docs <- code },
	}, nil)
	if err != nil {
		t.Fatalf("dial P1: %v", err)
	}
	defer s1.Close()
	go s1.Run(ctx)

	waitFor(t, "P1 conn id", func() bool { return s1.ConnID() != "" })
	if err := s1.DocumentChanged(ctx, "hello world"); err != nil {
		t.Fatalf("P1 edit: %v", err)
	}

	s2Docs := make(chan string, 8)
	s2, err := client.Dial(ctx, wsURL, "r1", "P2", client.Callbacks{
		OnDocument: func(code string) { s2Docs <- code },
	}, nil)
	if err != nil {
		t.Fatalf("dial P2: %v", err)
	}
	defer s2.Close()
	go s2.Run(ctx)

	// P1 observes P2's join and unicasts its document; P2 starts from that
	// snapshot without ever having edited.
	select {
	case code := <-s2Docs:
		if code != "hello world" {
			t.Fatalf("unexpected snapshot at P2: %q", code)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("P2 never received the join-time snapshot")
	}

	waitFor(t, "P2 membership view", func() bool { return len(s2.Participants()) == 2 })

	// An edit at P2 reaches P1 and does not bounce back to P2.
	if err := s2.DocumentChanged(ctx, "hello world v2"); err != nil {
		t.Fatalf("P2 edit: %v", err)
	}
	select {
	case code := <-s1Docs:
		if code != "hello world v2" {
			t.Fatalf("unexpected document at P1: %q", code)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("P1 never received P2's edit")
	}
	select {
	case code := <-s2Docs:
		t.Fatalf("P2's own edit echoed back: %q", code)
	default:
	}

	// A comment submitted at P2 lands in both logs exactly once.
	if err := s2.AddCommentWithID(ctx, "c1", 1, "note"); err != nil {
		t.Fatalf("P2 comment: %v", err)
	}
	waitFor(t, "comment at P1", func() bool { return len(s1.Comments()) == 1 })
	waitFor(t, "comment log settled at P2", func() bool { return len(s2.Comments()) == 1 })
	if got := s1.Comments()[0]; got.ID != "c1" || got.Author != "P2" {
		t.Fatalf("unexpected comment at P1: %+v", got)
	}

	// P2 leaves; P1's membership view shrinks back to itself.
	s2.Close()
	waitFor(t, "P1 membership view", func() bool { return len(s1.Participants()) == 1 })
}
