package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventMessage notifies room participants about a chat message.
	EventMessage EventKind = iota
	// EventHistory delivers message history to a client upon joining a room.
	EventHistory
	// EventUserJoined notifies participants that someone joined the room.
	EventUserJoined
	// EventUserLeft notifies participants that someone left the room.
	EventUserLeft
	// EventTyping relays a typing indicator.
	EventTyping
	// EventLocation delivers a live position report to observers.
	EventLocation
	// EventTrackingStarted announces the start of a location stream.
	EventTrackingStarted
	// EventTrackingEnded announces the end of a location stream.
	EventTrackingEnded
	// EventError notifies the client about a domain error.
	EventError
)

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind     EventKind
	Room     string
	User     Identity
	Message  ChatMessage
	Messages []ChatMessage // for EventHistory
	IsTyping bool
	Location LocationUpdate
	Tracking TrackingNotice
	Error    *CoreError
}
