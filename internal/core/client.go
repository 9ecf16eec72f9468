package core

import "sync"

// Client is one live connection as seen by the core layer. The transport
// writes commands into Commands and drains Events; the hub owns everything
// else about the connection's session state.
type Client struct {
	ID       string
	Commands chan *Command
	Events   chan *Event

	closeOnce sync.Once
}

// NewClient constructs a client with initialized channels.
func NewClient(id string) *Client {
	return &Client{
		ID:       id,
		Commands: make(chan *Command, 8),
		Events:   make(chan *Event, 32),
	}
}

// trySend delivers an event without blocking. Slow consumers drop.
func (c *Client) trySend(ev *Event) bool {
	select {
	case c.Events <- ev:
		return true
	default:
		return false
	}
}
