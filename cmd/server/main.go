// cmd/server/main.go
package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/unclebandit/customer-service-backend/internal/config"
	"github.com/unclebandit/customer-service-backend/internal/controller"
	"github.com/unclebandit/customer-service-backend/internal/db"
	"github.com/unclebandit/customer-service-backend/internal/handler"
	"github.com/unclebandit/customer-service-backend/internal/metrics"
	"github.com/unclebandit/customer-service-backend/internal/queue"
	"github.com/unclebandit/customer-service-backend/internal/repository"
	"github.com/unclebandit/customer-service-backend/internal/service"
)

const appName = "customer_service"

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg := config.Load()
	log.Printf("configured to communicate with product service at: %s", cfg.ProductServiceURL)

	// Init DB: blocks until the database is reachable or the retry
	// attempts run out.
	db.Init(cfg, db.DefaultRetryPolicy)

	m := metrics.New(appName)

	var q queue.Queue
	if cfg.AMQPURL != "" {
		q = &queue.AMQPQueue{URL: cfg.AMQPURL}
		log.Println("publishing customer events to RabbitMQ")
	} else {
		memq := queue.NewInMemoryQueue()
		queue.StartCustomerAuditSubscriber(memq)
		q = memq
	}

	customerRepo := &repository.CustomerRepository{DB: db.DB}

	customerService := &service.CustomerService{
		Repo:    customerRepo,
		Queue:   q,
		Metrics: m,
	}

	customerController := &controller.CustomerController{
		CustomerService: customerService,
	}

	healthHandler := &handler.HealthHandler{ServiceName: "customer-service"}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))
	r.Use(m.Middleware)

	r.Get("/", healthHandler.Root)
	r.Get("/health", healthHandler.Health)
	r.Method("GET", "/metrics", m.Handler())

	// Customer routes
	r.Post("/customers/", customerController.CreateCustomer)
	r.Get("/customers/", customerController.ListCustomers)
	r.Get("/customers/{id}", customerController.GetCustomer)
	r.Put("/customers/{id}", customerController.UpdateCustomer)
	r.Delete("/customers/{id}", customerController.DeleteCustomer)

	log.Printf("🚀 Server running on %s", cfg.HTTPAddr)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
