package queue

import (
    "encoding/json"
    "fmt"
    "log"
    "sync"
    "time"

    "github.com/streadway/amqp"

    "github.com/unclebandit/customer-service-backend/internal/model"
)

// TopicCustomerEvents carries customer lifecycle events.
const TopicCustomerEvents = "customer_events"

// Queue interface
type Queue interface {
    Publish(topic string, payload any) error
    Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue is an in-memory queue with retry, used when no broker is
// configured.
type InMemoryQueue struct {
    mu       sync.Mutex
    handlers map[string][]func(payload any) error
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue() *InMemoryQueue {
    return &InMemoryQueue{
        handlers: make(map[string][]func(payload any) error),
    }
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
    Payload    any
    RetryCount int
    MaxRetries int
}

// Publish sends a message to all subscribers
func (q *InMemoryQueue) Publish(topic string, payload any) error {
    q.mu.Lock()
    handlers := q.handlers[topic]
    q.mu.Unlock()

    if len(handlers) == 0 {
        return fmt.Errorf("no subscribers for topic %s", topic)
    }

    job := JobPayload{
        Payload:    payload,
        RetryCount: 0,
        MaxRetries: 3,
    }

    for _, handler := range handlers {
        go q.processJob(handler, job)
    }

    return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
    for job.RetryCount <= job.MaxRetries {
        err := handler(job.Payload)
        if err == nil {
            return // ACK
        }

        job.RetryCount++
        log.Printf("job failed (attempt %d/%d): %v", job.RetryCount, job.MaxRetries, err)

        if job.RetryCount > job.MaxRetries {
            log.Printf("job permanently failed after %d attempts: %+v", job.MaxRetries, job.Payload)
            return // No requeue
        }

        // Backoff before retry
        time.Sleep(time.Duration(job.RetryCount*500) * time.Millisecond)
    }
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
    q.mu.Lock()
    defer q.mu.Unlock()

    q.handlers[topic] = append(q.handlers[topic], handler)
    return nil
}

// AMQPQueue publishes to a durable RabbitMQ queue. Consumption happens in
// cmd/worker, which talks to the broker directly.
type AMQPQueue struct {
    URL string
}

func (q *AMQPQueue) Publish(topic string, payload any) error {
    conn, err := amqp.Dial(q.URL)
    if err != nil {
        return fmt.Errorf("connect to broker: %w", err)
    }
    defer conn.Close()

    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("open channel: %w", err)
    }
    defer ch.Close()

    declared, err := ch.QueueDeclare(
        topic,
        true,  // durable
        false, // delete when unused
        false, // exclusive
        false, // no-wait
        nil,   // arguments
    )
    if err != nil {
        return fmt.Errorf("declare queue: %w", err)
    }

    body, err := json.Marshal(payload)
    if err != nil {
        return err
    }

    return ch.Publish(
        "",
        declared.Name,
        false,
        false,
        amqp.Publishing{
            ContentType: "application/json",
            Body:        body,
        },
    )
}

func (q *AMQPQueue) Subscribe(topic string, handler func(payload any) error) error {
    return fmt.Errorf("amqp subscriptions run in cmd/worker, not in-process")
}

// StartCustomerAuditSubscriber logs every customer lifecycle event flowing
// through the in-memory queue. With a broker configured the audit trail is
// written by cmd/worker instead.
func StartCustomerAuditSubscriber(q Queue) {
    go func() {
        if err := q.Subscribe(TopicCustomerEvents, auditCustomerEvent); err != nil {
            log.Printf("⚠️ failed to start subscriber for %s: %v", TopicCustomerEvents, err)
        }
    }()
}

// auditCustomerEvent records one lifecycle event in the log. A payload of
// the wrong type is dropped with a nil return so the queue never retries it.
func auditCustomerEvent(payload any) error {
    event, ok := payload.(model.CustomerEvent)
    if !ok {
        log.Printf("⚠️ unexpected payload type on %s: %T", TopicCustomerEvents, payload)
        return nil // no retry
    }

    log.Printf("📩 audit: %s customer_id=%d email=%s", event.Type, event.CustomerID, event.Email)
    return nil
}
