package http

import (
	"encoding/json"

	"github.com/codepairhq/codepair-server/internal/core"
	"github.com/codepairhq/codepair-server/internal/proto"
)

func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error, error) {
	switch inbound.Type {
	case proto.InboundTypeJoin:
		var join proto.JoinData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return nil, nil, err
		}
		if join.RoomID == "" || join.Username == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "roomId and username are required"}, nil
		}
		return &core.Command{
			Kind:     core.CommandJoin,
			Room:     join.RoomID,
			Username: join.Username,
		}, nil, nil
	case proto.InboundTypeCodeChange:
		var change proto.CodeChangeData
		if err := json.Unmarshal(inbound.Data, &change); err != nil {
			return nil, nil, err
		}
		if change.RoomID == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "roomId is required"}, nil
		}
		return &core.Command{
			Kind: core.CommandCodeChange,
			Room: change.RoomID,
			Code: change.Code,
		}, nil, nil
	case proto.InboundTypeSyncCode:
		var sync proto.SyncCodeData
		if err := json.Unmarshal(inbound.Data, &sync); err != nil {
			return nil, nil, err
		}
		if sync.ConnectionID == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "connectionId is required"}, nil
		}
		return &core.Command{
			Kind:     core.CommandSyncCode,
			TargetID: sync.ConnectionID,
			Code:     sync.Code,
		}, nil, nil
	case proto.InboundTypeAddComment:
		var add proto.AddCommentData
		if err := json.Unmarshal(inbound.Data, &add); err != nil {
			return nil, nil, err
		}
		if add.RoomID == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "roomId is required"}, nil
		}
		return &core.Command{
			Kind: core.CommandAddComment,
			Room: add.RoomID,
			Comment: core.Comment{
				ID:         add.Comment.ID,
				LineNumber: add.Comment.LineNumber,
				Text:       add.Comment.Text,
				Author:     add.Comment.Author,
			},
		}, nil, nil
	case proto.InboundTypeChatMessage:
		var chat proto.ChatData
		if err := json.Unmarshal(inbound.Data, &chat); err != nil {
			return nil, nil, err
		}
		if chat.RoomID == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "roomId is required"}, nil
		}
		return &core.Command{
			Kind: core.CommandChatMessage,
			Room: chat.RoomID,
			Text: chat.Text,
		}, nil, nil
	default:
		return nil, &proto.Error{Code: "invalid_message", Msg: "unknown message type"}, nil
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventJoined:
		participants := make([]proto.ParticipantData, 0, len(event.Participants))
		for _, p := range event.Participants {
			participants = append(participants, proto.ParticipantData{
				ConnectionID: p.ConnID,
				Username:     p.Username,
			})
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventJoined,
			Data: proto.JoinedEvent{
				Participants: participants,
				Username:     event.Username,
				ConnectionID: event.ConnID,
			},
		}
	case core.EventDisconnected:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventDisconnected,
			Data: proto.DisconnectedEvent{
				ConnectionID: event.ConnID,
				Username:     event.Username,
			},
		}
	case core.EventCodeChange:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventCodeChange,
			Data:  proto.CodeChangeEvent{Code: event.Code},
		}
	case core.EventComment:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventAddComment,
			Data: proto.AddCommentEvent{
				Comment: proto.CommentData{
					ID:         event.Comment.ID,
					LineNumber: event.Comment.LineNumber,
					Text:       event.Comment.Text,
					Author:     event.Comment.Author,
				},
			},
		}
	case core.EventChat:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventChatMessage,
			Data: proto.ChatMessageEvent{
				Username: event.Chat.Username,
				Text:     event.Chat.Text,
			},
		}
	case core.EventError:
		if event.Error == nil {
			return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: "unknown", Msg: "unknown error"}}
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeError,
			Error: &proto.Error{Code: event.Error.Code, Msg: event.Error.Message},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeEvent}
	}
}
