package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Message is a direct message between two accounts.
type Message struct {
	ID        ID        `json:"id"`
	FromID    ID        `json:"fromId"`
	ToID      ID        `json:"toId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// UnmarshalJSON decodes a message with a lenient createdAt.
func (m *Message) UnmarshalJSON(data []byte) error {
	type plain Message
	var w struct {
		plain
		CreatedAt wireTime `json:"createdAt"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode message: %w", err)
	}
	*m = Message(w.plain)
	m.CreatedAt = w.CreatedAt.Time()
	return nil
}

// NewMessage is the payload for sending a message.
type NewMessage struct {
	FromID  ID     `json:"fromId"`
	ToID    ID     `json:"toId"`
	Content string `json:"content"`
}

// Conversation is identified by the unordered pair of its participants.
type Conversation struct {
	A, B ID
}

// Includes reports whether m was exchanged between exactly A and B,
// in either direction.
func (c Conversation) Includes(m Message) bool {
	return (m.FromID == c.A && m.ToID == c.B) || (m.FromID == c.B && m.ToID == c.A)
}
