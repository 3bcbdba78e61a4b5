package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoinRoom subscribes the client to a room under an identity.
	CommandJoinRoom CommandKind = iota
	// CommandLeaveRoom unsubscribes the client from a room.
	CommandLeaveRoom
	// CommandSendMessage delivers a chat message to room participants.
	CommandSendMessage
	// CommandTyping relays a typing indicator to other room participants.
	CommandTyping
	// CommandLocationUpdate relays a live position report.
	CommandLocationUpdate
	// CommandStartTracking announces the start of a location stream.
	CommandStartTracking
	// CommandStopTracking announces the end of a location stream.
	CommandStopTracking
)

// Command represents an action requested by a client.
type Command struct {
	Kind     CommandKind
	Room     string
	Identity Identity
	Message  ChatMessage
	IsTyping bool
	Location LocationUpdate
	Tracking TrackingNotice
}
