package core

import (
	"context"

	"github.com/rs/zerolog"
)

// HistoryReplaySize is the number of messages replayed to a joining client.
const HistoryReplaySize = 50

// Presence coordinates connection lifecycle transitions: join, leave, and
// disconnect. It is the only writer of the two registries besides the relay's
// cache append.
type Presence struct {
	registry  *Registry
	directory *Directory
	store     MessageStore
	log       *zerolog.Logger
}

// NewPresence constructs the lifecycle coordinator. store may be nil, in
// which case cold-cache joins replay an empty history.
func NewPresence(reg *Registry, dir *Directory, st MessageStore, logger *zerolog.Logger) *Presence {
	return &Presence{registry: reg, directory: dir, store: st, log: logger}
}

// OnJoin registers the connection under id, adds id to the room, notifies the
// other participants, and replays recent history to the joiner. A duplicate
// join (network retry) re-registers and replays but emits no second
// notification.
func (p *Presence) OnJoin(ctx context.Context, c *Client, room string, id Identity) {
	p.registry.Register(id, c)
	c.Identity = &id

	others := p.directory.Participants(room)
	newly := p.directory.Join(room, id)
	if newly {
		ev := &Event{Kind: EventUserJoined, Room: room, User: id}
		p.fanOut(others, c, ev)
	}

	history := p.directory.RecentMessages(room, HistoryReplaySize)
	if len(history) == 0 && p.store != nil {
		loaded, err := p.store.LoadRecentMessages(ctx, room, HistoryReplaySize)
		if err != nil {
			p.log.Warn().Err(err).Str("room", room).Msg("load history")
		} else if len(loaded) > 0 {
			for _, m := range loaded {
				p.directory.AppendMessage(room, m)
			}
			history = loaded
		}
	}
	c.send(&Event{Kind: EventHistory, Room: room, Messages: history})

	p.log.Debug().Str("room", room).Str("user", id.ID).Bool("new", newly).Msg("join")
}

// OnLeave removes the connection's identity from room and notifies the
// remaining participants. Leaving a room the identity is not in is silent.
func (p *Presence) OnLeave(c *Client, room string) {
	if c.Identity == nil {
		c.send(&Event{Kind: EventError, Error: coreError(ErrCodeNotJoined, "join a room first")})
		return
	}
	id := *c.Identity
	nowEmpty := p.directory.Leave(room, id.ID)
	if !nowEmpty && p.directory.Exists(room) {
		ev := &Event{Kind: EventUserLeft, Room: room, User: id}
		p.fanOut(p.directory.Participants(room), c, ev)
	}
}

// OnDisconnect purges the handle's identity from the registry and from every
// room it belonged to, notifying survivors. Handles that were never
// registered or were superseded by a reconnect are ignored; disconnects race
// with reconnects and must be tolerated silently.
func (p *Presence) OnDisconnect(c *Client) {
	id, ok := p.registry.Unregister(c)
	if !ok {
		return
	}
	for _, room := range p.directory.RoomsOf(id.ID) {
		nowEmpty := p.directory.Leave(room, id.ID)
		if nowEmpty {
			continue
		}
		ev := &Event{Kind: EventUserLeft, Room: room, User: id}
		p.fanOut(p.directory.Participants(room), nil, ev)
	}
	p.log.Debug().Str("user", id.ID).Msg("disconnect")
}

// Typing relays a typing indicator to the other participants of room. Pure
// broadcast, no state change.
func (p *Presence) Typing(c *Client, room string, isTyping bool) {
	if c.Identity == nil {
		return
	}
	ev := &Event{Kind: EventTyping, Room: room, User: *c.Identity, IsTyping: isTyping}
	p.fanOut(p.directory.Participants(room), c, ev)
}

// fanOut delivers ev to every live handle of ids, excluding the given handle.
func (p *Presence) fanOut(ids []Identity, exclude *Client, ev *Event) {
	for _, id := range ids {
		c, ok := p.registry.Lookup(id.ID)
		if !ok || c == exclude {
			continue
		}
		c.send(ev)
	}
}
