package amqp

import (
	"encoding/json"
	"time"
)

// Event kinds published on the expense feed.
const (
	KindExpenseCreated = "expense.created"
	KindExpenseDeleted = "expense.deleted"
)

// ExpenseEventMessage is a lightweight notification that an expense was
// created or deleted. Consumers fetch the full record themselves; the
// message carries only the id and kind.
type ExpenseEventMessage struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
}

func NewExpenseEventMessage(id, kind string) *ExpenseEventMessage {
	return &ExpenseEventMessage{
		ID:        id,
		Kind:      kind,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ExpenseEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseEventMessageFromJSON creates a message from JSON bytes
func ExpenseEventMessageFromJSON(data []byte) (*ExpenseEventMessage, error) {
	var msg ExpenseEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
