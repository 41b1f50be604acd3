package main

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/vnnovate/crm-core/internal/infra/database"
	"github.com/vnnovate/crm-core/internal/infra/http/handlers"
	"github.com/vnnovate/crm-core/internal/infra/http/middleware"
	"github.com/vnnovate/crm-core/internal/infra/mail"
	"github.com/vnnovate/crm-core/internal/infra/queue"
	"github.com/vnnovate/crm-core/internal/usecase"
)

func main() {
	godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		envOr("RABBITMQ_USER", "guest"),
		envOr("RABBITMQ_PASS", "guest"),
		envOr("RABBITMQ_HOST", "localhost"),
		envOr("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		log.WithError(err).Fatal("rabbitmq connection failed")
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositories
	userRepo := database.NewUserRepository(db)
	leadRepo := database.NewLeadRepository(db)
	contactRepo := database.NewContactRepository(db)
	clientRepo := database.NewClientRepository(db)
	projectRepo := database.NewProjectRepository(db)
	milestoneRepo := database.NewMilestoneRepository(db)
	paymentRepo := database.NewPaymentRepository(db)
	changeRequestRepo := database.NewChangeRequestRepository(db)
	taskRepo := database.NewTaskRepository(db)
	activityRepo := database.NewActivityRepository(db)
	txManager := database.NewTxManager(db)

	// 2. Adapters
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), 587, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
		envOr("MAIL_FROM", "no-reply@crm.local"),
	)

	// 3. Use cases
	directory := usecase.NewDirectory(userRepo, log)
	access := usecase.NewAccessEvaluator(directory, log)
	manageUser := usecase.NewManageUserUseCase(userRepo, log)
	updateLead := usecase.NewUpdateLeadUseCase(leadRepo, access, producer, os.Getenv("WON_STAGE"), log)
	importer := usecase.NewBulkImportUseCase(leadRepo, contactRepo, directory, producer, log)
	converter := usecase.NewConvertLeadUseCase(leadRepo, clientRepo, log)
	cascade := &usecase.CascadeDeleteUseCase{
		Users:          userRepo,
		Leads:          leadRepo,
		Contacts:       contactRepo,
		Clients:        clientRepo,
		Projects:       projectRepo,
		Milestones:     milestoneRepo,
		Payments:       paymentRepo,
		ChangeRequests: changeRequestRepo,
		Tasks:          taskRepo,
		Activities:     activityRepo,
		Tx:             txManager,
		Log:            log,
	}

	// 4. Worker (consumes CRM events: client auto-creation, summary mail)
	autoCreateClient := os.Getenv("AUTO_CREATE_CLIENT") == "true"
	worker := queue.NewWorker(rabbitMQ.Ch, converter, mailSender, autoCreateClient, log)
	go worker.Start(queue.QueueName)

	// 5. Handlers
	leadHandler := handlers.NewLeadHandler(leadRepo, directory, access, updateLead)
	importHandler := handlers.NewImportHandler(directory, importer)
	deleteHandler := handlers.NewDeleteHandler(directory, cascade)
	userHandler := handlers.NewUserHandler(directory, manageUser)
	healthHandler := handlers.NewHealthHandler(db)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-User-ID"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth)

		r.Get("/leads", leadHandler.HandleList)
		r.Put("/leads/{id}", leadHandler.HandleUpdate)
		r.Post("/leads/import", importHandler.Handle)

		r.Delete("/leads/{id}", deleteHandler.HandleLead)
		r.Delete("/clients/{id}", deleteHandler.HandleClient)
		r.Delete("/projects/{id}", deleteHandler.HandleProject)
		r.Delete("/users/{id}", deleteHandler.HandleUser)

		r.Post("/users", userHandler.HandleCreate)
		r.Put("/users/{id}", userHandler.HandleUpdate)
	})

	port := ":" + envOr("PORT", "8080")
	log.WithField("port", port).Info("crm-core listening")
	if err := http.ListenAndServe(port, r); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
