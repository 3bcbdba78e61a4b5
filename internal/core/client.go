package core

// Client is a live connection handle as seen by the core layer. Identity is
// nil until the first join names one; it is written only by the hub loop.
type Client struct {
	ConnID   string
	Identity *Identity
	Commands chan *Command
	Events   chan *Event
}

// NewClient constructs a client with initialized channels.
func NewClient(connID string) *Client {
	return &Client{
		ConnID:   connID,
		Commands: make(chan *Command, 8),
		Events:   make(chan *Event, 32),
	}
}

// send delivers an event without blocking. Slow consumers lose events rather
// than stalling the hub loop.
func (c *Client) send(ev *Event) {
	select {
	case c.Events <- ev:
	default:
	}
}
