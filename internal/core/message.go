package core

import "time"

// ChatMessage is the domain model for a chat message. PersistedID is empty
// until the durable store accepts the write.
type ChatMessage struct {
	PersistedID string
	Room        string
	SenderID    string
	SenderName  string
	SenderKind  Kind
	Body        string
	SentAt      time.Time
}

// LocationUpdate is a live position report from a delivery agent. It is
// relayed and forgotten; the core keeps no copy.
type LocationUpdate struct {
	OrderID    string
	AgentID    string
	AgentName  string
	Latitude   float64
	Longitude  float64
	Accuracy   *float64
	Altitude   *float64
	Speed      *float64
	Heading    *float64
	ObservedAt time.Time
}

// TrackingNotice announces that a stream of location updates for an order is
// starting or ending. It carries no session state.
type TrackingNotice struct {
	OrderID   string
	AgentID   string
	AgentName string
}
