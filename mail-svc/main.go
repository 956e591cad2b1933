package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/SundayYogurt/CoffeeChat-Backend/mail-svc/config"
	"github.com/SundayYogurt/CoffeeChat-Backend/mail-svc/infra/queue"
	"github.com/SundayYogurt/CoffeeChat-Backend/mail-svc/internal/api/rest/handlers"
	"github.com/SundayYogurt/CoffeeChat-Backend/mail-svc/internal/services"
)

func main() {
	// ---------- Load Config ----------
	cfg := config.LoadConfig()

	log.Println("Mail Service starting...")
	log.Printf("KafkaBroker=%s Topic=%s GroupID=%s\n",
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaGroupID,
	)
	if cfg.KafkaBroker == "" {
		log.Fatal("KAFKA_BROKER is required")
	}

	// ---------- Init Service ----------
	sender := services.NewSMTPSender(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUser,
		cfg.SMTPPassword,
		cfg.MailFrom,
		cfg.MailFromName,
	)
	mailService, err := services.NewMailService(sender, cfg.FrontendURL)
	if err != nil {
		log.Fatalf("mail templates error: %v", err)
	}

	// ---------- Init Handler ----------
	handler := handlers.NewMailHandler(mailService)

	// ---------- Init Kafka Consumer ----------
	consumer := queue.NewKafkaConsumer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaGroupID,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
		handler,
	)

	// ---------- Start Listening ----------
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Println("Mail Service listening for events...")
	consumer.Listen(ctx)
	log.Println("Mail Service stopped")
}
