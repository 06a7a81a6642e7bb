// Package events publishes gamification notifications (XP awarded, level-up,
// achievement granted) to RabbitMQ for downstream consumers such as push
// notification workers. Publishing is fire-and-forget: a broker failure is
// logged and never fails the originating request.
package events

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/streadway/amqp"
)

const exchangeName = "bora.events"

const (
	EventXPAwarded          = "user.xp"
	EventLevelUp            = "user.levelup"
	EventAchievementGranted = "user.achievement"
	EventCheckIn            = "activity.checkin"
)

type Event struct {
	Name   string                 `json:"name"`
	UserID string                 `json:"userId"`
	Data   map[string]interface{} `json:"data,omitempty"`
	At     time.Time              `json:"at"`
}

type Publisher interface {
	Publish(event Event)
	Close() error
}

type AMQPPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	mu      sync.Mutex
}

func NewAMQPPublisher(url string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %v", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %v", err)
	}

	err = channel.ExchangeDeclare(
		exchangeName, // name
		"topic",      // kind
		true,         // durable
		false,        // auto-delete
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %v", err)
	}

	return &AMQPPublisher{conn: conn, channel: channel}, nil
}

func (p *AMQPPublisher) Publish(event Event) {
	if event.At.IsZero() {
		event.At = time.Now()
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("events: failed to marshal %s: %v", event.Name, err)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.Publish(
		exchangeName, // exchange
		event.Name,   // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   event.At,
		},
	)
	if err != nil {
		log.Printf("events: failed to publish %s: %v", event.Name, err)
	}
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NoopPublisher discards events. Used when RabbitMQ is unavailable and in tests.
type NoopPublisher struct{}

func (NoopPublisher) Publish(Event) {}
func (NoopPublisher) Close() error  { return nil }
