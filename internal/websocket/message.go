package websocket

import (
	"encoding/json"
	"time"
)

type MessageType string

const (
	// Client to Server
	MessageTypeSyncStatus MessageType = "SYNC_STATUS"

	// Server to Client
	MessageTypeStatus           MessageType = "STATUS"
	MessageTypeSnapshotUpdated  MessageType = "SNAPSHOT_UPDATED"
	MessageTypeRefreshFailed    MessageType = "REFRESH_FAILED"
	MessageTypeRefreshDiscarded MessageType = "REFRESH_DISCARDED"
	MessageTypeError            MessageType = "ERROR"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
	Seq       uint64          `json:"seq,omitempty"`
}

func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      msgType,
		Payload:   payloadBytes,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

// Server to Client payloads

// SnapshotPayload describes a published snapshot. It is sent as STATUS and
// SNAPSHOT_UPDATED.
type SnapshotPayload struct {
	SnapshotID string    `json:"snapshotId"`
	Generation uint64    `json:"generation"`
	LoadedAt   time.Time `json:"loadedAt"`
	Counts     Counts    `json:"counts"`
}

type Counts struct {
	Teams         int `json:"teams"`
	Characters    int `json:"characters"`
	Players       int `json:"players"`
	RosterRows    int `json:"rosterRows"`
	RosterPlayers int `json:"rosterPlayers"`
	IsoRecos      int `json:"isoRecos"`
}

type RefreshFailedPayload struct {
	Generation uint64 `json:"generation"`
	Error      string `json:"error"`
}

type RefreshDiscardedPayload struct {
	Generation uint64 `json:"generation"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
