package core

import "testing"

func TestRegistryJoinLeave(t *testing.T) {
	reg := NewRegistry()

	alice := NewClient("a")
	room, participants, cerr := reg.Join(alice, "r1", "alice")
	if cerr != nil {
		t.Fatalf("join failed: %v", cerr)
	}
	if room.Name != "r1" || len(participants) != 1 {
		t.Fatalf("unexpected join result: %v %+v", room.Name, participants)
	}

	bob := NewClient("b")
	if _, participants, cerr = reg.Join(bob, "r1", "bob"); cerr != nil {
		t.Fatalf("second join failed: %v", cerr)
	}
	if len(participants) != 2 || participants[1].Username != "bob" {
		t.Fatalf("participant list not in join order: %+v", participants)
	}

	if _, _, cerr := reg.Join(alice, "r1", "alice"); cerr == nil || cerr.Code != ErrCodeAlreadyJoined {
		t.Fatalf("expected already_joined, got %v", cerr)
	}

	p, _, ok := reg.Leave("a")
	if !ok || p.Username != "alice" || p.Room != "r1" {
		t.Fatalf("unexpected leave result: %+v %v", p, ok)
	}
	if members := reg.MembersOf("r1"); len(members) != 1 || members[0].ConnID != "b" {
		t.Fatalf("unexpected members after leave: %+v", members)
	}

	// Duplicate disconnect signals are a no-op.
	if _, _, ok := reg.Leave("a"); ok {
		t.Fatal("second leave should report not found")
	}
}

func TestRegistryRoomDisappearsWithLastMember(t *testing.T) {
	reg := NewRegistry()

	alice := NewClient("a")
	reg.Join(alice, "r1", "alice")
	reg.Leave("a")

	if members := reg.MembersOf("r1"); len(members) != 0 {
		t.Fatalf("expected empty room, got %+v", members)
	}
	if _, exists := reg.rooms["r1"]; exists {
		t.Fatal("empty room should be dropped")
	}

	// The room can be recreated fresh, with no stale comment log.
	bob := NewClient("b")
	room, _, cerr := reg.Join(bob, "r1", "bob")
	if cerr != nil {
		t.Fatalf("rejoin failed: %v", cerr)
	}
	if len(room.Comments()) != 0 {
		t.Fatalf("recreated room carries comments: %+v", room.Comments())
	}
}

func TestRoomCommentDedup(t *testing.T) {
	room := NewRoom("r1")

	if !room.AddComment(Comment{ID: "42", LineNumber: 1, Text: "first"}) {
		t.Fatal("fresh id rejected")
	}
	if room.AddComment(Comment{ID: "42", LineNumber: 9, Text: "second"}) {
		t.Fatal("duplicate id accepted")
	}
	comments := room.Comments()
	if len(comments) != 1 || comments[0].Text != "first" {
		t.Fatalf("unexpected comment log: %+v", comments)
	}
}

func TestRoomBroadcastCountsDrops(t *testing.T) {
	room := NewRoom("r1")

	fast := NewClient("fast")
	slow := NewClient("slow")
	slow.Events = make(chan *Event) // unbuffered, nobody reading
	room.add(fast, Participant{ConnID: "fast", Room: "r1"})
	room.add(slow, Participant{ConnID: "slow", Room: "r1"})

	sent, dropped := room.Broadcast(&Event{Kind: EventChat})
	if sent != 1 || dropped != 1 {
		t.Fatalf("expected 1 sent 1 dropped, got %d %d", sent, dropped)
	}
	sent, dropped = room.BroadcastExcept("fast", &Event{Kind: EventChat})
	if sent != 0 || dropped != 1 {
		t.Fatalf("expected only the slow member targeted, got %d %d", sent, dropped)
	}
}
