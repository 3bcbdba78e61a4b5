package http

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/freshfold/freshfold-server/internal/proto"
)

func wsURL(s *testServer, token string) string {
	return strings.Replace(s.ts.URL, "http", "ws", 1) + "/ws?token=" + token
}

func dialWS(t *testing.T, ctx context.Context, s *testServer, token string) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.Dial(ctx, wsURL(s, token), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "done") })
	return conn
}

func sendEvent(t *testing.T, ctx context.Context, conn *websocket.Conn, event string, data any) {
	t.Helper()

	payload, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal %s: %v", event, err)
	}
	if err := wsjson.Write(ctx, conn, proto.Inbound{Event: event, Data: payload}); err != nil {
		t.Fatalf("write %s: %v", event, err)
	}
}

// readUntil reads envelopes until one matches event, discarding others.
func readUntil(t *testing.T, ctx context.Context, conn *websocket.Conn, event string) json.RawMessage {
	t.Helper()

	for {
		var outbound struct {
			Event string          `json:"event"`
			Data  json.RawMessage `json:"data"`
			Error *proto.Error    `json:"error"`
		}
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			t.Fatalf("read waiting for %s: %v", event, err)
		}
		if outbound.Event == event {
			if event == proto.OutboundError {
				raw, _ := json.Marshal(outbound.Error)
				return raw
			}
			return outbound.Data
		}
	}
}

func TestHealthEndpoint(t *testing.T) {
	s := startTestServer(t)

	resp, err := s.ts.Client().Get(s.ts.URL + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}

func TestWSRejectsMissingToken(t *testing.T) {
	s := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	url := strings.Replace(s.ts.URL, "http", "ws", 1) + "/ws"
	if _, _, err := websocket.Dial(ctx, url, nil); err == nil {
		t.Fatalf("expected dial without token to fail")
	}
}

func TestWSJoinSendReceive(t *testing.T) {
	s := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	connA := dialWS(t, ctx, s, s.newToken(t, "alice", "customer"))
	connB := dialWS(t, ctx, s, s.newToken(t, "bob", "deliveryAgent"))

	sendEvent(t, ctx, connA, proto.InboundJoinRoom, proto.JoinRoomData{
		UserID: "u1", UserName: "alice", UserType: "customer", RoomID: "order-42",
	})
	readUntil(t, ctx, connA, proto.OutboundRoomHistory)

	sendEvent(t, ctx, connB, proto.InboundJoinRoom, proto.JoinRoomData{
		UserID: "u2", UserName: "bob", UserType: "deliveryAgent", RoomID: "order-42",
	})
	readUntil(t, ctx, connB, proto.OutboundRoomHistory)

	joined := readUntil(t, ctx, connA, proto.OutboundUserJoined)
	var presence proto.PresencePayload
	if err := json.Unmarshal(joined, &presence); err != nil {
		t.Fatalf("unmarshal user-joined: %v", err)
	}
	if presence.UserID != "u2" || presence.RoomID != "order-42" {
		t.Fatalf("unexpected user-joined payload: %+v", presence)
	}

	sendEvent(t, ctx, connA, proto.InboundSendMessage, proto.SendMessageData{
		RoomID: "order-42", SenderID: "u1", SenderName: "alice",
		SenderType: "customer", Message: "laundry is ready",
	})

	for _, conn := range []*websocket.Conn{connA, connB} {
		raw := readUntil(t, ctx, conn, proto.OutboundReceiveMessage)
		var msg proto.MessagePayload
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.Fatalf("unmarshal receive-message: %v", err)
		}
		if msg.Message != "laundry is ready" || msg.SenderID != "u1" || msg.ID == "" {
			t.Fatalf("unexpected message payload: %+v", msg)
		}
	}
}

func TestWSHistoryReplayedToLateJoiner(t *testing.T) {
	s := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	connA := dialWS(t, ctx, s, s.newToken(t, "alice", "customer"))
	sendEvent(t, ctx, connA, proto.InboundJoinRoom, proto.JoinRoomData{
		UserID: "u1", UserName: "alice", UserType: "customer", RoomID: "order-7",
	})
	readUntil(t, ctx, connA, proto.OutboundRoomHistory)

	for _, text := range []string{"first", "second"} {
		sendEvent(t, ctx, connA, proto.InboundSendMessage, proto.SendMessageData{
			RoomID: "order-7", SenderID: "u1", SenderName: "alice",
			SenderType: "customer", Message: text,
		})
		readUntil(t, ctx, connA, proto.OutboundReceiveMessage)
	}

	connB := dialWS(t, ctx, s, s.newToken(t, "bob", "admin"))
	sendEvent(t, ctx, connB, proto.InboundJoinRoom, proto.JoinRoomData{
		UserID: "u2", UserName: "bob", UserType: "admin", RoomID: "order-7",
	})

	raw := readUntil(t, ctx, connB, proto.OutboundRoomHistory)
	var history proto.HistoryPayload
	if err := json.Unmarshal(raw, &history); err != nil {
		t.Fatalf("unmarshal room-history: %v", err)
	}
	if len(history.Messages) != 2 || history.Messages[0].Message != "first" {
		t.Fatalf("unexpected history payload: %+v", history)
	}
}

func TestWSLocationFlow(t *testing.T) {
	s := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	agent := dialWS(t, ctx, s, s.newToken(t, "courier", "deliveryAgent"))
	admin := dialWS(t, ctx, s, s.newToken(t, "ops", "admin"))

	sendEvent(t, ctx, agent, proto.InboundJoinRoom, proto.JoinRoomData{
		UserID: "d1", UserName: "courier", UserType: "deliveryAgent", RoomID: "order-9",
	})
	readUntil(t, ctx, agent, proto.OutboundRoomHistory)

	sendEvent(t, ctx, admin, proto.InboundJoinRoom, proto.JoinRoomData{
		UserID: "a1", UserName: "ops", UserType: "admin", RoomID: "dispatch",
	})
	readUntil(t, ctx, admin, proto.OutboundRoomHistory)

	sendEvent(t, ctx, agent, proto.InboundJoinTracking, proto.JoinTrackingData{
		OrderID: "order-9", DeliveryBoyID: "d1", DeliveryBoyName: "courier",
	})
	readUntil(t, ctx, admin, proto.OutboundTrackingStarted)

	sendEvent(t, ctx, agent, proto.InboundLocation, proto.LocationData{
		OrderID: "order-9", DeliveryBoyID: "d1", Latitude: 52.52, Longitude: 13.405,
	})

	raw := readUntil(t, ctx, admin, proto.OutboundLocationUpdated)
	var loc proto.LocationPayload
	if err := json.Unmarshal(raw, &loc); err != nil {
		t.Fatalf("unmarshal location-updated: %v", err)
	}
	if loc.Latitude != 52.52 || loc.OrderID != "order-9" {
		t.Fatalf("unexpected location payload: %+v", loc)
	}

	sendEvent(t, ctx, agent, proto.InboundLeaveTracking, proto.LeaveTrackingData{
		OrderID: "order-9", DeliveryBoyID: "d1",
	})
	readUntil(t, ctx, admin, proto.OutboundTrackingEnded)
}

func TestWSMalformedPayloadReportsError(t *testing.T) {
	s := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	conn := dialWS(t, ctx, s, s.newToken(t, "alice", "customer"))

	// join-room without a roomId must be dropped with an error envelope.
	sendEvent(t, ctx, conn, proto.InboundJoinRoom, proto.JoinRoomData{
		UserID: "u1", UserName: "alice", UserType: "customer",
	})

	raw := readUntil(t, ctx, conn, proto.OutboundError)
	var protoErr proto.Error
	if err := json.Unmarshal(raw, &protoErr); err != nil {
		t.Fatalf("unmarshal error payload: %v", err)
	}
	if protoErr.Code != "bad_request" {
		t.Fatalf("expected bad_request, got %+v", protoErr)
	}
}
