package http

import (
	"encoding/json"
	"time"

	"github.com/freshfold/freshfold-server/internal/core"
	"github.com/freshfold/freshfold-server/internal/proto"
)

func badRequest(msg string) *proto.Error {
	return &proto.Error{Code: core.ErrCodeBadRequest, Msg: msg}
}

// inboundToCommand maps a wire event to a core command. A malformed payload
// yields a protocol error for the sender and no command; the event is dropped.
func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error, error) {
	switch inbound.Event {
	case proto.InboundJoinRoom:
		var data proto.JoinRoomData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return nil, nil, err
		}
		if data.RoomID == "" || data.UserID == "" {
			return nil, badRequest("roomId and userId are required"), nil
		}
		kind, ok := core.ParseKind(data.UserType)
		if !ok {
			return nil, badRequest("unknown userType"), nil
		}
		return &core.Command{
			Kind: core.CommandJoinRoom,
			Room: data.RoomID,
			Identity: core.Identity{
				ID:          data.UserID,
				DisplayName: data.UserName,
				Kind:        kind,
			},
		}, nil, nil

	case proto.InboundLeaveRoom:
		var data proto.LeaveRoomData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return nil, nil, err
		}
		if data.RoomID == "" {
			return nil, badRequest("roomId is required"), nil
		}
		return &core.Command{Kind: core.CommandLeaveRoom, Room: data.RoomID}, nil, nil

	case proto.InboundSendMessage:
		var data proto.SendMessageData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return nil, nil, err
		}
		if data.RoomID == "" || data.SenderID == "" || data.Message == "" {
			return nil, badRequest("roomId, senderId and message are required"), nil
		}
		kind, ok := core.ParseKind(data.SenderType)
		if !ok {
			return nil, badRequest("unknown senderType"), nil
		}
		sentAt := time.Now()
		if data.Timestamp != nil {
			sentAt = time.UnixMilli(*data.Timestamp)
		}
		return &core.Command{
			Kind: core.CommandSendMessage,
			Room: data.RoomID,
			Message: core.ChatMessage{
				Room:       data.RoomID,
				SenderID:   data.SenderID,
				SenderName: data.SenderName,
				SenderKind: kind,
				Body:       data.Message,
				SentAt:     sentAt,
			},
		}, nil, nil

	case proto.InboundTyping:
		var data proto.TypingData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return nil, nil, err
		}
		if data.RoomID == "" {
			return nil, badRequest("roomId is required"), nil
		}
		return &core.Command{
			Kind:     core.CommandTyping,
			Room:     data.RoomID,
			IsTyping: data.IsTyping,
		}, nil, nil

	case proto.InboundLocation:
		var data proto.LocationData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return nil, nil, err
		}
		if data.OrderID == "" || data.DeliveryBoyID == "" {
			return nil, badRequest("orderId and deliveryBoyId are required"), nil
		}
		observedAt := time.Now()
		if data.Timestamp != nil {
			observedAt = time.UnixMilli(*data.Timestamp)
		}
		return &core.Command{
			Kind: core.CommandLocationUpdate,
			Location: core.LocationUpdate{
				OrderID:    data.OrderID,
				AgentID:    data.DeliveryBoyID,
				Latitude:   data.Latitude,
				Longitude:  data.Longitude,
				Accuracy:   data.Accuracy,
				Altitude:   data.Altitude,
				Speed:      data.Speed,
				Heading:    data.Heading,
				ObservedAt: observedAt,
			},
		}, nil, nil

	case proto.InboundJoinTracking:
		var data proto.JoinTrackingData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return nil, nil, err
		}
		if data.OrderID == "" || data.DeliveryBoyID == "" {
			return nil, badRequest("orderId and deliveryBoyId are required"), nil
		}
		return &core.Command{
			Kind: core.CommandStartTracking,
			Tracking: core.TrackingNotice{
				OrderID:   data.OrderID,
				AgentID:   data.DeliveryBoyID,
				AgentName: data.DeliveryBoyName,
			},
		}, nil, nil

	case proto.InboundLeaveTracking:
		var data proto.LeaveTrackingData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return nil, nil, err
		}
		if data.OrderID == "" || data.DeliveryBoyID == "" {
			return nil, badRequest("orderId and deliveryBoyId are required"), nil
		}
		return &core.Command{
			Kind: core.CommandStopTracking,
			Tracking: core.TrackingNotice{
				OrderID: data.OrderID,
				AgentID: data.DeliveryBoyID,
			},
		}, nil, nil

	default:
		return nil, &proto.Error{Code: "invalid_event", Msg: "unknown event"}, nil
	}
}

func messagePayload(msg core.ChatMessage) proto.MessagePayload {
	return proto.MessagePayload{
		ID:         msg.PersistedID,
		RoomID:     msg.Room,
		SenderID:   msg.SenderID,
		SenderName: msg.SenderName,
		SenderType: string(msg.SenderKind),
		Message:    msg.Body,
		Timestamp:  msg.SentAt.UnixMilli(),
	}
}

// outboundFromEvent maps a core event to its wire representation.
func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventMessage:
		return proto.Outbound{
			Event: proto.OutboundReceiveMessage,
			Data:  messagePayload(event.Message),
		}
	case core.EventHistory:
		messages := make([]proto.MessagePayload, 0, len(event.Messages))
		for _, msg := range event.Messages {
			messages = append(messages, messagePayload(msg))
		}
		return proto.Outbound{
			Event: proto.OutboundRoomHistory,
			Data:  proto.HistoryPayload{RoomID: event.Room, Messages: messages},
		}
	case core.EventUserJoined:
		return proto.Outbound{
			Event: proto.OutboundUserJoined,
			Data: proto.PresencePayload{
				RoomID:   event.Room,
				UserID:   event.User.ID,
				UserName: event.User.DisplayName,
				UserType: string(event.User.Kind),
			},
		}
	case core.EventUserLeft:
		return proto.Outbound{
			Event: proto.OutboundUserLeft,
			Data: proto.PresencePayload{
				RoomID:   event.Room,
				UserID:   event.User.ID,
				UserName: event.User.DisplayName,
				UserType: string(event.User.Kind),
			},
		}
	case core.EventTyping:
		return proto.Outbound{
			Event: proto.OutboundUserTyping,
			Data: proto.TypingData{
				RoomID:   event.Room,
				UserID:   event.User.ID,
				UserName: event.User.DisplayName,
				IsTyping: event.IsTyping,
			},
		}
	case core.EventLocation:
		return proto.Outbound{
			Event: proto.OutboundLocationUpdated,
			Data: proto.LocationPayload{
				OrderID:         event.Location.OrderID,
				DeliveryBoyID:   event.Location.AgentID,
				DeliveryBoyName: event.Location.AgentName,
				Latitude:        event.Location.Latitude,
				Longitude:       event.Location.Longitude,
				Accuracy:        event.Location.Accuracy,
				Altitude:        event.Location.Altitude,
				Speed:           event.Location.Speed,
				Heading:         event.Location.Heading,
				Timestamp:       event.Location.ObservedAt.UnixMilli(),
			},
		}
	case core.EventTrackingStarted:
		return proto.Outbound{
			Event: proto.OutboundTrackingStarted,
			Data: proto.TrackingPayload{
				OrderID:         event.Tracking.OrderID,
				DeliveryBoyID:   event.Tracking.AgentID,
				DeliveryBoyName: event.Tracking.AgentName,
			},
		}
	case core.EventTrackingEnded:
		return proto.Outbound{
			Event: proto.OutboundTrackingEnded,
			Data: proto.TrackingPayload{
				OrderID:       event.Tracking.OrderID,
				DeliveryBoyID: event.Tracking.AgentID,
			},
		}
	case core.EventError:
		if event.Error == nil {
			return proto.Outbound{Event: proto.OutboundError, Error: &proto.Error{Code: "unknown", Msg: "unknown error"}}
		}
		return proto.Outbound{
			Event: proto.OutboundError,
			Error: &proto.Error{Code: event.Error.Code, Msg: event.Error.Message},
		}
	default:
		return proto.Outbound{Event: proto.OutboundError, Error: &proto.Error{Code: "unknown", Msg: "unmapped event"}}
	}
}
