package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/freshfold/freshfold-server/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket address")
	token := flag.String("token", "", "JWT from /api/login")
	userID := flag.String("user", "smoke-user", "user id to join with")
	userName := flag.String("name", "Smoke Tester", "display name")
	userType := flag.String("type", "customer", "customer|deliveryAgent|admin")
	room := flag.String("room", "order-smoke", "room id")
	text := flag.String("text", "hello from smoke test", "message to send")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	opts := &websocket.DialOptions{}
	if *token != "" {
		opts.HTTPHeader = http.Header{"Authorization": {"Bearer " + *token}}
	}
	conn, _, err := websocket.Dial(ctx, *addr, opts)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	send := func(event string, data any) error {
		raw, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", event, err)
		}
		if err := wsjson.Write(ctx, conn, proto.Inbound{Event: event, Data: raw}); err != nil {
			return fmt.Errorf("send %s: %w", event, err)
		}
		return nil
	}

	if err := send(proto.InboundJoinRoom, proto.JoinRoomData{
		UserID:   *userID,
		UserName: *userName,
		UserType: *userType,
		RoomID:   *room,
	}); err != nil {
		return err
	}
	if err := send(proto.InboundSendMessage, proto.SendMessageData{
		RoomID:     *room,
		SenderID:   *userID,
		SenderName: *userName,
		SenderType: *userType,
		Message:    *text,
	}); err != nil {
		return err
	}

	for {
		var outbound struct {
			Event string          `json:"event"`
			Data  json.RawMessage `json:"data"`
			Error *proto.Error    `json:"error"`
		}
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			return fmt.Errorf("read: %w", err)
		}

		fmt.Printf("Received: event=%s\n", outbound.Event)
		if outbound.Error != nil {
			fmt.Printf("Error: %s %s\n", outbound.Error.Code, outbound.Error.Msg)
		}

		switch outbound.Event {
		case proto.OutboundRoomHistory:
			var history proto.HistoryPayload
			if err := json.Unmarshal(outbound.Data, &history); err == nil {
				fmt.Printf("History: room=%s messages=%d\n", history.RoomID, len(history.Messages))
			}
		case proto.OutboundReceiveMessage:
			var msg proto.MessagePayload
			if err := json.Unmarshal(outbound.Data, &msg); err != nil {
				fmt.Printf("Raw data: %s\n", string(outbound.Data))
				return fmt.Errorf("unmarshal message: %w", err)
			}
			fmt.Printf("Message: id=%s room=%s sender=%s text=%q ts=%d\n",
				msg.ID, msg.RoomID, msg.SenderName, msg.Message, msg.Timestamp)
			return nil
		case proto.OutboundUserJoined:
			var presence proto.PresencePayload
			if err := json.Unmarshal(outbound.Data, &presence); err == nil {
				fmt.Printf("Joined: room=%s user=%s\n", presence.RoomID, presence.UserName)
			}
		default:
			// keep looping for the echoed message
		}
	}
}
