package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"financas/internal/core"
)

// RecomputeMessage asks the worker to refresh one user's summary for one
// month. It carries only the coordinates; the worker reloads everything
// else from the database.
type RecomputeMessage struct {
	UserID    string    `json:"user_id"`
	Month     string    `json:"month"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRecomputeMessage(userID string, month core.Month) *RecomputeMessage {
	return &RecomputeMessage{
		UserID:    userID,
		Month:     month.String(),
		Timestamp: time.Now(),
	}
}

// ParseMonth decodes the wire month back into a core.Month.
func (m *RecomputeMessage) ParseMonth() (core.Month, error) {
	return core.ParseMonth(m.Month)
}

func (m *RecomputeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RecomputeMessageFromJSON(data []byte) (*RecomputeMessage, error) {
	var msg RecomputeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("unmarshal recompute message: %w", err)
	}
	if msg.UserID == "" || msg.Month == "" {
		return nil, fmt.Errorf("recompute message missing user or month")
	}
	return &msg, nil
}
