package core

import (
	"context"
	"fmt"
	"testing"
)

func benchmarkSnapshotFanOut(b *testing.B, recipients int) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil, nil)
	go hub.Run(ctx)

	sender := NewClient("sender")
	hub.RegisterClient(sender)
	sender.Commands <- &Command{Kind: CommandJoin, Room: "bench", Username: "sender"}

	clients := make([]*Client, 0, recipients)
	for i := 0; i < recipients; i++ {
		c := NewClient(fmt.Sprintf("c%d", i))
		hub.RegisterClient(c)
		c.Commands <- &Command{Kind: CommandJoin, Room: "bench", Username: "client"}
		clients = append(clients, c)
	}

	// Drain events for all but the first recipient to avoid channel backpressure.
	target := clients[0]
	for _, c := range clients[1:] {
		go func(cl *Client) {
			for range cl.Events {
			}
		}(c)
	}
	go func() {
		for range sender.Events {
		}
	}()

	// Wait for all joins to be processed, then clear the join backlog so the
	// timed loop only ever sees snapshot events.
	for {
		members, err := hub.Members(ctx, "bench")
		if err != nil {
			b.Fatalf("members query: %v", err)
		}
		if len(members) == recipients+1 {
			break
		}
	}
	for {
		select {
		case <-target.Events:
			continue
		default:
		}
		break
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		sender.Commands <- &Command{Kind: CommandCodeChange, Room: "bench", Code: "payload"}
		for ev := range target.Events {
			if ev.Kind == EventCodeChange {
				break
			}
		}
	}
}

func BenchmarkSnapshotFanOut_10(b *testing.B)  { benchmarkSnapshotFanOut(b, 10) }
func BenchmarkSnapshotFanOut_100(b *testing.B) { benchmarkSnapshotFanOut(b, 100) }
func BenchmarkSnapshotFanOut_500(b *testing.B) { benchmarkSnapshotFanOut(b, 500) }
