package proto

import "encoding/json"

// Inbound is the envelope for events coming from the client. The event names
// and payload field names are the platform's existing wire vocabulary; mobile
// and dashboard clients depend on them verbatim.
type Inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

const (
	InboundJoinRoom      = "join-room"
	InboundLeaveRoom     = "leave-room"
	InboundSendMessage   = "send-message"
	InboundTyping        = "typing"
	InboundLocation      = "location-update"
	InboundJoinTracking  = "join-location-tracking"
	InboundLeaveTracking = "leave-location-tracking"

	OutboundRoomHistory     = "room-history"
	OutboundReceiveMessage  = "receive-message"
	OutboundUserJoined      = "user-joined"
	OutboundUserLeft        = "user-left"
	OutboundUserTyping      = "user-typing"
	OutboundLocationUpdated = "location-updated"
	OutboundTrackingStarted = "location-tracking-started"
	OutboundTrackingEnded   = "location-tracking-ended"
	OutboundError           = "error"
)

// JoinRoomData subscribes the connection to a room under an identity.
type JoinRoomData struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	UserType string `json:"userType"`
	RoomID   string `json:"roomId"`
}

// LeaveRoomData unsubscribes the connection from a room.
type LeaveRoomData struct {
	RoomID string `json:"roomId"`
}

// SendMessageData is a chat message from the client. Timestamp is client
// milliseconds since epoch; the server fills it in when absent.
type SendMessageData struct {
	RoomID     string `json:"roomId"`
	SenderID   string `json:"senderId"`
	SenderName string `json:"senderName"`
	SenderType string `json:"senderType"`
	Message    string `json:"message"`
	Timestamp  *int64 `json:"timestamp,omitempty"`
}

// TypingData is a transient typing indicator.
type TypingData struct {
	RoomID   string `json:"roomId"`
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	IsTyping bool   `json:"isTyping"`
}

// LocationData is a live position report from a delivery agent.
type LocationData struct {
	OrderID       string   `json:"orderId"`
	DeliveryBoyID string   `json:"deliveryBoyId"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	Accuracy      *float64 `json:"accuracy,omitempty"`
	Altitude      *float64 `json:"altitude,omitempty"`
	Speed         *float64 `json:"speed,omitempty"`
	Heading       *float64 `json:"heading,omitempty"`
	Timestamp     *int64   `json:"timestamp,omitempty"`
}

// JoinTrackingData announces the start of a location stream for an order.
type JoinTrackingData struct {
	OrderID         string `json:"orderId"`
	DeliveryBoyID   string `json:"deliveryBoyId"`
	DeliveryBoyName string `json:"deliveryBoyName"`
}

// LeaveTrackingData announces the end of a location stream.
type LeaveTrackingData struct {
	OrderID       string `json:"orderId"`
	DeliveryBoyID string `json:"deliveryBoyId"`
}

// Outbound is the envelope for events sent to the client.
type Outbound struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// MessagePayload is a fully-formed chat message as delivered to clients.
type MessagePayload struct {
	ID         string `json:"id,omitempty"`
	RoomID     string `json:"roomId"`
	SenderID   string `json:"senderId"`
	SenderName string `json:"senderName"`
	SenderType string `json:"senderType"`
	Message    string `json:"message"`
	Timestamp  int64  `json:"timestamp"`
}

// HistoryPayload replays recent messages to a joining client, oldest first.
type HistoryPayload struct {
	RoomID   string           `json:"roomId"`
	Messages []MessagePayload `json:"messages"`
}

// PresencePayload notifies about a participant joining or leaving a room.
type PresencePayload struct {
	RoomID   string `json:"roomId"`
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	UserType string `json:"userType"`
}

// LocationPayload is a relayed position report.
type LocationPayload struct {
	OrderID         string   `json:"orderId"`
	DeliveryBoyID   string   `json:"deliveryBoyId"`
	DeliveryBoyName string   `json:"deliveryBoyName,omitempty"`
	Latitude        float64  `json:"latitude"`
	Longitude       float64  `json:"longitude"`
	Accuracy        *float64 `json:"accuracy,omitempty"`
	Altitude        *float64 `json:"altitude,omitempty"`
	Speed           *float64 `json:"speed,omitempty"`
	Heading         *float64 `json:"heading,omitempty"`
	Timestamp       int64    `json:"timestamp"`
}

// TrackingPayload notifies observers about a location stream starting or ending.
type TrackingPayload struct {
	OrderID         string `json:"orderId"`
	DeliveryBoyID   string `json:"deliveryBoyId"`
	DeliveryBoyName string `json:"deliveryBoyName,omitempty"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
