package ws

import (
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EntityEmployee = "employee"
	EntityContact  = "contact"
)

// Event é o que o cliente WebSocket recebe para cada mensagem da fila.
type Event struct {
	MessageID string    `json:"messageId,omitempty"`
	Action    string    `json:"action,omitempty"`
	Entity    string    `json:"entity,omitempty"`
	ID        int64     `json:"id,omitempty"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ValidEntity aceita "" (sem filtro), employee ou contact.
func ValidEntity(s string) bool {
	return s == "" || s == EntityEmployee || s == EntityContact
}

func EventFromDelivery(d amqp.Delivery) Event {
	ev := Event{
		MessageID: d.MessageId,
		Entity:    d.Type,
		Message:   string(d.Body),
		Timestamp: d.Timestamp.UTC(),
	}
	if s, ok := d.Headers["action"].(string); ok {
		ev.Action = s
	}
	if ev.Entity == "" {
		if s, ok := d.Headers["entity"].(string); ok {
			ev.Entity = s
		}
	}
	ev.ID = headerInt(d.Headers["id"])
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}
	return ev
}

// headerInt: o amqp decodifica inteiros em tamanhos diferentes conforme o publicador.
func headerInt(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case int16:
		return int64(n)
	case int:
		return int64(n)
	case string:
		var out int64
		_, _ = fmt.Sscan(n, &out)
		return out
	}
	return 0
}

func (e Event) JSON() []byte {
	b, _ := json.Marshal(e)
	return b
}
