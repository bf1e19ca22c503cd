// Package syncer delivers fire-and-forget entity-changed notifications to an
// external system. Delivery is best effort: failures are logged and never
// propagate back into the mutation that triggered them.
package syncer

import (
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// event is the message published for every synced mutation.
type event struct {
	Entity    string    `json:"entity"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
}

// AMQP publishes entity-changed events to a durable queue.
type AMQP struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
}

const queueName = "ats_sync"

// NewAMQP connects to the broker and declares the sync queue.
func NewAMQP(url string) (*AMQP, error) {
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
		nil,   // args
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	log.Printf("sync: connected to broker, queue %q declared", queueName)
	return &AMQP{conn: conn, channel: ch, queue: q}, nil
}

// EntityChanged publishes one event. Errors are logged and swallowed.
func (a *AMQP) EntityChanged(entity, name string) {
	body, err := json.Marshal(event{Entity: entity, Name: name, Timestamp: time.Now()})
	if err != nil {
		log.Printf("sync: marshal event: %v", err)
		return
	}
	err = a.channel.Publish(
		"",           // default exchange
		a.queue.Name, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		log.Printf("sync: publish %s %q: %v", entity, name, err)
	}
}

// Close releases the broker connection.
func (a *AMQP) Close() {
	_ = a.channel.Close()
	_ = a.conn.Close()
}

// Logger is the fallback syncer used when no broker is configured: it only
// writes the notification to the log.
type Logger struct{}

func (Logger) EntityChanged(entity, name string) {
	log.Printf("[sync] %s %q changed", entity, name)
}
