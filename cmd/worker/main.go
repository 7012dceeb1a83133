// cmd/worker/main.go
package main

import (
	"database/sql"
	"encoding/json"
	"log"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/streadway/amqp"

	"github.com/unclebandit/customer-service-backend/internal/config"
	"github.com/unclebandit/customer-service-backend/internal/model"
	"github.com/unclebandit/customer-service-backend/internal/queue"
	"github.com/unclebandit/customer-service-backend/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg := config.Load()
	if cfg.AMQPURL == "" {
		log.Fatal("AMQP_URL must be set for the audit worker")
	}

	// Connect to DB
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		log.Fatal("failed to connect to DB:", err)
	}
	defer db.Close()

	auditRepo := &repository.AuditRepository{DB: db}
	if err := auditRepo.EnsureSchema(); err != nil {
		log.Fatal("failed to ensure audit schema:", err)
	}

	// Connect to RabbitMQ
	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		log.Fatal("failed to connect to RabbitMQ:", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatal("failed to open a channel:", err)
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		queue.TopicCustomerEvents, // name
		true,                      // durable
		false,                     // delete when unused
		false,                     // exclusive
		false,                     // no-wait
		nil,                       // arguments
	)
	if err != nil {
		log.Fatal("failed to declare queue:", err)
	}

	msgs, err := ch.Consume(
		q.Name,
		"",
		false, // autoAck = false for reliability
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Fatal("failed to register consumer:", err)
	}

	log.Println("📩 audit worker consuming", q.Name)

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var event model.CustomerEvent
			if err := json.Unmarshal(d.Body, &event); err != nil {
				log.Println("⚠️ invalid event payload:", err)
				d.Ack(false)
				continue
			}

			if err := auditRepo.Record(&event, string(d.Body)); err != nil {
				log.Printf("⚠️ failed to record %s for customer %d: %v", event.Type, event.CustomerID, err)
				d.Nack(false, true) // requeue
				continue
			}

			log.Printf("✅ recorded %s for customer %d", event.Type, event.CustomerID)
			d.Ack(false)
		}
	}()

	<-forever
}
