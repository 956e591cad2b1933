package queue

import (
	"context"
	"crypto/tls"
	"errors"
	"log"
	"time"

	"github.com/SundayYogurt/CoffeeChat-Backend/mail-svc/internal/interfaces"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

type KafkaConsumer struct {
	Reader      *kafka.Reader
	Handler     interfaces.ConsumerHandler
	ServiceName string
}

// NewKafkaConsumer uses SASL/PLAIN over TLS when username is set.
func NewKafkaConsumer(broker, topic, groupID, username, password string, handler interfaces.ConsumerHandler) *KafkaConsumer {
	dialer := &kafka.Dialer{
		Timeout:   10 * time.Second,
		DualStack: true,
	}
	if username != "" {
		dialer.TLS = &tls.Config{MinVersion: tls.VersionTLS12}
		dialer.SASLMechanism = plain.Mechanism{
			Username: username,
			Password: password,
		}
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  []string{broker},
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  time.Second,
		Dialer:   dialer,
	})

	return &KafkaConsumer{
		Reader:      reader,
		Handler:     handler,
		ServiceName: "Mail Service",
	}
}

// Listen reads until ctx is cancelled. Handler errors are logged and the message
// is still committed.
func (kc *KafkaConsumer) Listen(ctx context.Context) {
	defer func() {
		if err := kc.Reader.Close(); err != nil {
			log.Printf("[%s] close error: %v\n", kc.ServiceName, err)
		}
	}()

	for {
		msg, err := kc.Reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			log.Printf("[%s] read error: %v\n", kc.ServiceName, err)
			time.Sleep(time.Second)
			continue
		}

		log.Printf("[%s] received key=%s offset=%d\n", kc.ServiceName, msg.Key, msg.Offset)

		if err := kc.Handler.HandleMessage(msg.Key, msg.Value); err != nil {
			log.Printf("[%s] handler error: %v\n", kc.ServiceName, err)
		}
	}
}
