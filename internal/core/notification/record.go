// Package notification holds the admin notification records returned by the
// backend and the pure derivations over them: lane classification and
// broadcast grouping.
package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Type is the tag the backend stores on every notification.
type Type string

const (
	TypeInfo    Type = "info"
	TypeWarning Type = "warning"
	TypeSuccess Type = "success"
	TypeOrder   Type = "order"
)

// Broadcast is the target sentinel meaning "every user". The backend
// materializes one record per recipient for a broadcast send.
const Broadcast = "all"

// Record is a single physical notification as stored by the backend.
type Record struct {
	ID         string    `json:"_id"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Type       Type      `json:"type"`
	TargetUser string    `json:"targetUser"`
	CreatedAt  time.Time `json:"createdAt"`
	Read       bool      `json:"read"`
}

// IsBroadcast reports whether the record was addressed to all users rather
// than a single recipient.
func (r Record) IsBroadcast() bool {
	return r.TargetUser == "" || r.TargetUser == Broadcast
}

// UnmarshalJSON accepts both `_id` and `id`, and a targetUser that is either
// a plain id, null, or a populated user object.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw struct {
		MongoID    string          `json:"_id"`
		ID         string          `json:"id"`
		Title      string          `json:"title"`
		Message    string          `json:"message"`
		Type       Type            `json:"type"`
		TargetUser json.RawMessage `json:"targetUser"`
		CreatedAt  time.Time       `json:"createdAt"`
		Read       bool            `json:"read"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	target, err := decodeTarget(raw.TargetUser)
	if err != nil {
		return fmt.Errorf("decode targetUser: %w", err)
	}

	*r = Record{
		ID:         raw.MongoID,
		Title:      raw.Title,
		Message:    raw.Message,
		Type:       raw.Type,
		TargetUser: target,
		CreatedAt:  raw.CreatedAt,
		Read:       raw.Read,
	}
	if r.ID == "" {
		r.ID = raw.ID
	}
	return nil
}

func decodeTarget(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	case '{':
		var obj struct {
			MongoID string `json:"_id"`
			ID      string `json:"id"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return "", err
		}
		if obj.MongoID != "" {
			return obj.MongoID, nil
		}
		return obj.ID, nil
	default:
		return "", fmt.Errorf("unexpected value %s", raw)
	}
}

// IDs returns the ids of records in input order.
func IDs(records []Record) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}
