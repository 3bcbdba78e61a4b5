package core

import (
	"context"

	"github.com/rs/zerolog"
)

// Hub is the single serialization boundary for all registry and room
// mutations. Every inbound command and every lifecycle transition passes
// through its Run loop, making membership changes and broadcasts linearizable
// with respect to each other. Transports interact with the hub only through
// RegisterClient/UnregisterClient and the per-client channels.
type Hub struct {
	registry  *Registry
	directory *Directory
	relay     *Relay
	presence  *Presence
	location  *LocationRelay
	log       *zerolog.Logger

	commands   chan clientCommand
	register   chan *Client
	unregister chan *Client
}

type clientCommand struct {
	client *Client
	cmd    *Command
}

// NewHub wires the coordinator over fresh registries. st may be nil for
// store-less operation (history replay then serves the cache only).
func NewHub(st MessageStore, logger *zerolog.Logger) *Hub {
	reg := NewRegistry()
	dir := NewDirectory()
	return &Hub{
		registry:   reg,
		directory:  dir,
		relay:      NewRelay(reg, dir, st, logger),
		presence:   NewPresence(reg, dir, st, logger),
		location:   NewLocationRelay(reg),
		log:        logger,
		commands:   make(chan clientCommand, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// RegisterClient announces a new connection and starts pumping its commands
// into the hub loop. The pump exits when the client's Commands channel is
// closed by the transport.
func (h *Hub) RegisterClient(c *Client) {
	h.register <- c
	go func() {
		for cmd := range c.Commands {
			h.commands <- clientCommand{client: c, cmd: cmd}
		}
	}()
}

// UnregisterClient signals that the connection is gone. Safe to call for
// clients whose identity was superseded by a reconnect.
func (h *Hub) UnregisterClient(c *Client) {
	h.unregister <- c
}

// Participants exposes a read-only presence snapshot for a room.
func (h *Hub) Participants(room string) []Identity {
	return h.directory.Participants(room)
}

// Run processes lifecycle and command events until ctx is cancelled. It must
// be running before any client is registered.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case c := <-h.register:
			h.log.Debug().Str("conn", c.ConnID).Msg("connection registered")

		case c := <-h.unregister:
			h.presence.OnDisconnect(c)

		case cc := <-h.commands:
			h.dispatch(ctx, cc.client, cc.cmd)

		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) dispatch(ctx context.Context, c *Client, cmd *Command) {
	switch cmd.Kind {
	case CommandJoinRoom:
		h.presence.OnJoin(ctx, c, cmd.Room, cmd.Identity)
	case CommandLeaveRoom:
		h.presence.OnLeave(c, cmd.Room)
	case CommandSendMessage:
		if c.Identity == nil {
			c.send(&Event{Kind: EventError, Error: coreError(ErrCodeNotJoined, "join a room first")})
			return
		}
		h.relay.Send(ctx, c, cmd.Message)
	case CommandTyping:
		h.presence.Typing(c, cmd.Room, cmd.IsTyping)
	case CommandLocationUpdate:
		h.location.Relay(c, cmd.Location)
	case CommandStartTracking:
		h.location.StartTracking(c, cmd.Tracking)
	case CommandStopTracking:
		h.location.StopTracking(c, cmd.Tracking)
	default:
		c.send(&Event{Kind: EventError, Error: coreError(ErrCodeBadRequest, "unknown command")})
	}
}
