package probe

import (
	"encoding/json"
	"log"

	"SessionSpectra/internal/config"
	"SessionSpectra/internal/model"

	"github.com/nats-io/nats.go"
)

// IntervalHandler is a function that processes a received session interval.
type IntervalHandler func(iv model.Interval)

// Subscriber is responsible for subscribing to a NATS subject and decoding
// interval messages.
type Subscriber struct {
	nc      *nats.Conn
	sub     *nats.Subscription
	subject string
}

// NewSubscriber creates a new NATS subscriber.
func NewSubscriber(cfg config.ProbeConfig) (*Subscriber, error) {
	nc, err := nats.Connect(cfg.NATSURL)
	if err != nil {
		return nil, err
	}
	log.Printf("Connected to NATS server at %s", cfg.NATSURL)
	return &Subscriber{nc: nc, subject: cfg.Subject}, nil
}

// Start subscribes to the configured subject and processes every message
// with the provided handler. Malformed payloads are logged and dropped.
func (s *Subscriber) Start(handler IntervalHandler) error {
	sub, err := s.nc.Subscribe(s.subject, func(msg *nats.Msg) {
		var iv model.Interval
		if err := json.Unmarshal(msg.Data, &iv); err != nil {
			log.Printf("Error unmarshalling interval: %v", err)
			return
		}
		handler(iv)
	})
	if err != nil {
		return err
	}
	s.sub = sub
	log.Printf("Subscribed to '%s'. Waiting for intervals...", s.subject)
	return nil
}

// Close unsubscribes and closes the NATS connection.
func (s *Subscriber) Close() {
	if s.sub != nil {
		s.sub.Unsubscribe()
	}
	if s.nc != nil {
		s.nc.Close()
		log.Println("NATS connection closed.")
	}
}
