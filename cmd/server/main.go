// cmd/server/main.go
package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/previsoft/duerp-backend/internal/config"
	"github.com/previsoft/duerp-backend/internal/controller"
	"github.com/previsoft/duerp-backend/internal/db"
	"github.com/previsoft/duerp-backend/internal/events"
	"github.com/previsoft/duerp-backend/internal/handler"
	"github.com/previsoft/duerp-backend/internal/mailer"
	"github.com/previsoft/duerp-backend/internal/pdf"
	"github.com/previsoft/duerp-backend/internal/repository"
	"github.com/previsoft/duerp-backend/internal/service"
	"github.com/previsoft/duerp-backend/internal/storage"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg := config.Load()

	// Init DB
	db.Init()

	clientRepo := &repository.ClientRepository{DB: db.DB}
	productRepo := &repository.ProductRepository{DB: db.DB}
	templateRepo := &repository.TemplateRepository{DB: db.DB}
	documentRepo := &repository.DocumentRepository{DB: db.DB}
	historyRepo := &repository.HistoryRepository{DB: db.DB}

	store, err := storage.New(storage.Config{
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		PublicURL: cfg.S3PublicURL,
		PathStyle: cfg.S3PathStyle,
	})
	if err != nil {
		log.Fatalf("failed to init storage: %v", err)
	}

	// SMTP transporter is built once and reused for every send.
	smtpMailer := mailer.NewSMTPMailer(
		cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword,
		cfg.MailFrom, cfg.MailFromName,
	)

	// Audit event feed is optional: without a broker sends still work.
	publisher, err := events.NewPublisher(cfg.AMQPURL)
	if err != nil {
		log.Println("⚠️ AMQP unavailable, send events disabled:", err)
	} else {
		defer publisher.Close()
	}

	generator := pdf.NewGenerator(cfg.LogoURL, cfg.CompanyName)

	resolver := &service.TemplateResolver{
		TemplateRepo: templateRepo,
		ClientRepo:   clientRepo,
	}

	assembler := &service.AttachmentAssembler{
		TemplateRepo: templateRepo,
		ProductRepo:  productRepo,
		DocumentRepo: documentRepo,
		Storage:      store,
		Generator:    generator,
	}

	sendService := &service.SendService{
		Resolver:     resolver,
		Assembler:    assembler,
		Mailer:       smtpMailer,
		HistoryRepo:  historyRepo,
		DocumentRepo: documentRepo,
		Events:       publisher,
	}

	documentController := &controller.DocumentController{
		Pipeline: sendService,
	}

	historyHandler := &handler.HistoryHandler{
		Repo: historyRepo,
	}

	r := chi.NewRouter()

	// Document pipeline routes
	r.Post("/api/documents/send", documentController.SendDocuments)
	r.Post("/api/history/{id}/retry", documentController.RetrySend)
	r.Get("/api/history", historyHandler.ListHistoryHandler)
	r.Get("/api/history/{id}", historyHandler.GetHistoryHandler)

	log.Println("🚀 Server running on :8080")
	log.Fatal(http.ListenAndServe(":8080", r))
}
