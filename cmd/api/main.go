package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/allycar/outreach/internal/businesshours"
	"github.com/allycar/outreach/internal/config"
	"github.com/allycar/outreach/internal/entity"
	"github.com/allycar/outreach/internal/infra/database"
	"github.com/allycar/outreach/internal/infra/http/handlers"
	"github.com/allycar/outreach/internal/infra/http/middleware"
	"github.com/allycar/outreach/internal/infra/integration/twilio"
	"github.com/allycar/outreach/internal/infra/mail"
	"github.com/allycar/outreach/internal/infra/queue"
	"github.com/allycar/outreach/internal/infra/sheets"
	"github.com/allycar/outreach/internal/infra/store"
	"github.com/allycar/outreach/internal/infra/worker"
	"github.com/allycar/outreach/internal/usecase"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Horários comerciais: fusos inválidos derrubam a subida aqui,
	// nunca em runtime.
	hoursTable, err := config.LoadBusinessHours(cfg.BusinessHoursFile)
	if err != nil {
		log.Fatal(err)
	}
	gate, err := businesshours.NewGate(hoursTable, cfg.DefaultCountry, time.Now)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	// 1. Gateway de mensagens
	twilioClient := twilio.NewClient(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppNumber)

	// 2. Fonte de leads (planilha)
	leadSource, err := sheets.NewClient(ctx, []byte(cfg.GoogleCredentialsJSON), cfg.SpreadsheetID, cfg.SheetRange)
	if err != nil {
		log.Fatal(err)
	}

	// 3. Store de sessões: em memória por padrão; Postgres quando
	// DATABASE_URL está presente (conversas sobrevivem a restart).
	var sessionStore entity.SessionStoreInterface
	var db *sql.DB
	if cfg.DatabaseURL != "" {
		db, err = database.NewDBConnection(cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
		sessionStore = database.NewSessionRepository(db)
		log.Println("✅ Store de sessões: Postgres")
	} else {
		sessionStore = store.NewMemoryStore()
		log.Println("⚠️ Store de sessões: memória (estado não sobrevive a restart)")
	}

	// 4. Notificação de escalação: direta por padrão; via fila quando
	// AMQP_URL está presente (worker consome e notifica o comercial).
	direct := usecase.NewDirectNotifier(twilioClient, cfg.CommercialWhatsApp)
	if cfg.MailConfigured() {
		direct.Email = mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass)
		direct.SalesEmail = cfg.SalesEmail
	}

	var notifier usecase.EscalationNotifierInterface = direct
	var amqpConn *amqp.Connection
	if cfg.AMQPURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.AMQPURL)
		if err != nil {
			log.Fatal(err)
		}
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()
		amqpConn = rabbitMQ.Conn

		escalationWorker := queue.NewWorker(rabbitMQ.Ch, direct)
		go escalationWorker.Start(queue.QueueName)

		notifier = usecase.NewQueueNotifier(queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch))
		log.Println("✅ Escalações via RabbitMQ")
	}

	// 5. Driver de disparo
	pacer := usecase.NewPacer(cfg.SendInterval, 1)
	outreachUC := usecase.NewRunOutreachUseCase(leadSource, gate, twilioClient, sessionStore, pacer)

	if cfg.OutreachInterval > 0 {
		scheduler := worker.NewOutreachScheduler(outreachUC, cfg.OutreachInterval)
		go scheduler.Start(ctx)
	}

	// 6. Handlers
	locks := store.NewKeyLock()
	webhookHandler := handlers.NewWebhookHandler(sessionStore, notifier, locks)
	conversationHandler := handlers.NewConversationHandler(sessionStore, outreachUC)
	outreachHandler := handlers.NewOutreachHandler(outreachUC)
	healthHandler := handlers.NewHealthHandler(db, amqpConn, twilioClient, true)

	// 7. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
	}))

	r.Post("/webhook/whatsapp", webhookHandler.Handle)
	r.Post("/register_conversation", conversationHandler.HandleRegister)
	r.Get("/conversations", conversationHandler.HandleList)
	r.Post("/test/send", conversationHandler.HandleTestSend)
	r.Get("/trigger-send", outreachHandler.HandleTrigger)
	r.Post("/trigger-send", outreachHandler.HandleTrigger)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	log.Printf("🚀 Servidor Allycar Outreach rodando na porta :%s", cfg.Port)
	log.Printf("📱 Webhook: http://localhost:%s/webhook/whatsapp", cfg.Port)
	http.ListenAndServe(":"+cfg.Port, r)
}
