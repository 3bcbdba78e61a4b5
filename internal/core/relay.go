package core

import (
	"context"

	"github.com/rs/zerolog"
)

// MessageStore is the durable-store collaborator consumed by the relay and by
// join-time history replay when the in-memory cache is cold.
type MessageStore interface {
	// PersistMessage writes a message and returns its durable ID.
	PersistMessage(ctx context.Context, msg ChatMessage) (string, error)
	// LoadRecentMessages returns up to limit messages for the room, oldest first.
	LoadRecentMessages(ctx context.Context, room string, limit int) ([]ChatMessage, error)
}

// Relay accepts inbound chat messages, persists them, and fans them out to
// the live participants of the target room.
type Relay struct {
	registry  *Registry
	directory *Directory
	store     MessageStore
	log       *zerolog.Logger
}

// NewRelay constructs a message relay over the given registries and store.
func NewRelay(reg *Registry, dir *Directory, st MessageStore, logger *zerolog.Logger) *Relay {
	return &Relay{registry: reg, directory: dir, store: st, log: logger}
}

// Send persists msg and, only on success, mirrors it into the room cache and
// broadcasts it to every participant with a live handle. A failed persist
// aborts the send: no broadcast, no cache append, and the failure is reported
// to the sender alone. Participants without a live handle are skipped; they
// catch up through history replay on their next join.
func (r *Relay) Send(ctx context.Context, sender *Client, msg ChatMessage) {
	persistedID, err := r.store.PersistMessage(ctx, msg)
	if err != nil {
		r.log.Error().Err(err).Str("room", msg.Room).Msg("persist message")
		sender.send(&Event{
			Kind:  EventError,
			Room:  msg.Room,
			Error: coreError(ErrCodeDeliveryFailed, "message could not be delivered"),
		})
		return
	}
	msg.PersistedID = persistedID

	r.directory.AppendMessage(msg.Room, msg)

	ev := &Event{Kind: EventMessage, Room: msg.Room, Message: msg}
	for _, id := range r.directory.Participants(msg.Room) {
		if c, ok := r.registry.Lookup(id.ID); ok {
			c.send(ev)
		}
	}
}
