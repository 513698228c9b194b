// internal/events/publisher.go
package events

import (
	"encoding/json"
	"log"
	"time"

	"github.com/streadway/amqp"
)

const queueName = "duerp_send_events"

// SendEvent mirrors one send attempt for external dashboard consumers.
type SendEvent struct {
	ClientID    int       `json:"client_id"`
	TemplateKey string    `json:"template_key"`
	Recipient   string    `json:"recipient"`
	Status      string    `json:"status"`
	Error       string    `json:"error,omitempty"`
	Attachments int       `json:"attachments"`
	SentAt      time.Time `json:"sent_at"`
}

// Publisher pushes send events to a durable queue. Publishing is strictly
// best-effort: a broker problem never fails a send.
type Publisher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

func NewPublisher(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	q, err := ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &Publisher{conn: conn, ch: ch, queue: q.Name}, nil
}

// Publish emits one event. Errors are logged and swallowed; a nil receiver
// (no broker configured) is a no-op.
func (p *Publisher) Publish(ev SendEvent) {
	if p == nil {
		return
	}

	body, err := json.Marshal(ev)
	if err != nil {
		log.Println("⚠️ failed to encode send event:", err)
		return
	}

	err = p.ch.Publish(
		"",
		p.queue,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		log.Println("⚠️ failed to publish send event:", err)
	}
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	p.ch.Close()
	p.conn.Close()
}
