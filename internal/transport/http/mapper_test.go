package http

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/freshfold/freshfold-server/internal/core"
	"github.com/freshfold/freshfold-server/internal/proto"
)

func rawInbound(t *testing.T, event string, data any) proto.Inbound {
	t.Helper()

	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return proto.Inbound{Event: event, Data: raw}
}

func TestInboundToCommandJoinRoom(t *testing.T) {
	cmd, protoErr, err := inboundToCommand(rawInbound(t, proto.InboundJoinRoom, proto.JoinRoomData{
		UserID: "u1", UserName: "alice", UserType: "customer", RoomID: "order-1",
	}))
	if err != nil || protoErr != nil {
		t.Fatalf("unexpected error: %v %v", err, protoErr)
	}
	if cmd.Kind != core.CommandJoinRoom || cmd.Room != "order-1" {
		t.Fatalf("unexpected command: %+v", cmd)
	}
	if cmd.Identity.Kind != core.KindCustomer || cmd.Identity.DisplayName != "alice" {
		t.Fatalf("unexpected identity: %+v", cmd.Identity)
	}
}

func TestInboundToCommandRejectsMissingFields(t *testing.T) {
	tests := []struct {
		name  string
		event string
		data  any
	}{
		{"join without room", proto.InboundJoinRoom, proto.JoinRoomData{UserID: "u1", UserType: "customer"}},
		{"join without user", proto.InboundJoinRoom, proto.JoinRoomData{RoomID: "r", UserType: "customer"}},
		{"join with bad kind", proto.InboundJoinRoom, proto.JoinRoomData{UserID: "u1", RoomID: "r", UserType: "wizard"}},
		{"message without body", proto.InboundSendMessage, proto.SendMessageData{RoomID: "r", SenderID: "u1", SenderType: "customer"}},
		{"message without sender", proto.InboundSendMessage, proto.SendMessageData{RoomID: "r", Message: "hi", SenderType: "customer"}},
		{"typing without room", proto.InboundTyping, proto.TypingData{UserID: "u1"}},
		{"location without order", proto.InboundLocation, proto.LocationData{DeliveryBoyID: "d1"}},
		{"tracking without agent", proto.InboundJoinTracking, proto.JoinTrackingData{OrderID: "o1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, protoErr, err := inboundToCommand(rawInbound(t, tt.event, tt.data))
			if err != nil {
				t.Fatalf("unexpected hard error: %v", err)
			}
			if protoErr == nil {
				t.Fatalf("expected protocol error, got command %+v", cmd)
			}
			if cmd != nil {
				t.Fatalf("malformed payload must not produce a command")
			}
		})
	}
}

func TestInboundToCommandUnknownEvent(t *testing.T) {
	cmd, protoErr, err := inboundToCommand(proto.Inbound{Event: "mystery", Data: []byte(`{}`)})
	if err != nil || cmd != nil {
		t.Fatalf("unexpected result: %v %+v", err, cmd)
	}
	if protoErr == nil || protoErr.Code != "invalid_event" {
		t.Fatalf("expected invalid_event, got %+v", protoErr)
	}
}

func TestInboundToCommandSendMessageTimestamp(t *testing.T) {
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC).UnixMilli()
	cmd, protoErr, err := inboundToCommand(rawInbound(t, proto.InboundSendMessage, proto.SendMessageData{
		RoomID: "order-1", SenderID: "u1", SenderName: "alice",
		SenderType: "customer", Message: "hi", Timestamp: &ts,
	}))
	if err != nil || protoErr != nil {
		t.Fatalf("unexpected error: %v %v", err, protoErr)
	}
	if cmd.Message.SentAt.UnixMilli() != ts {
		t.Fatalf("client timestamp not honored: %v", cmd.Message.SentAt)
	}
}

func TestOutboundFromEventRoundTrip(t *testing.T) {
	msg := core.ChatMessage{
		PersistedID: "42", Room: "order-1", SenderID: "u1", SenderName: "alice",
		SenderKind: core.KindCustomer, Body: "hi", SentAt: time.Now(),
	}

	out := outboundFromEvent(&core.Event{Kind: core.EventMessage, Room: "order-1", Message: msg})
	if out.Event != proto.OutboundReceiveMessage {
		t.Fatalf("unexpected outbound event: %s", out.Event)
	}
	payload, ok := out.Data.(proto.MessagePayload)
	if !ok || payload.ID != "42" || payload.SenderType != "customer" {
		t.Fatalf("unexpected payload: %+v", out.Data)
	}

	out = outboundFromEvent(&core.Event{
		Kind: core.EventUserLeft, Room: "order-1",
		User: core.Identity{ID: "u1", DisplayName: "alice", Kind: core.KindCustomer},
	})
	if out.Event != proto.OutboundUserLeft {
		t.Fatalf("unexpected outbound event: %s", out.Event)
	}

	out = outboundFromEvent(&core.Event{
		Kind:  core.EventError,
		Error: &core.CoreError{Code: "delivery_failed", Message: "boom"},
	})
	if out.Error == nil || out.Error.Code != "delivery_failed" {
		t.Fatalf("unexpected error envelope: %+v", out)
	}
}
