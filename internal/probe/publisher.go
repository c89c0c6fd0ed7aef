package probe

import (
	"encoding/json"
	"log"

	"SessionSpectra/internal/config"
	"SessionSpectra/internal/model"

	"github.com/nats-io/nats.go"
)

// Publisher is responsible for publishing session intervals to a NATS
// subject.
type Publisher struct {
	nc      *nats.Conn
	subject string
}

// NewPublisher creates a new NATS publisher.
func NewPublisher(cfg config.ProbeConfig) (*Publisher, error) {
	nc, err := nats.Connect(cfg.NATSURL)
	if err != nil {
		return nil, err
	}
	log.Printf("Connected to NATS server at %s", cfg.NATSURL)
	return &Publisher{nc: nc, subject: cfg.Subject}, nil
}

// Publish serializes an interval to JSON and publishes it to the configured
// NATS subject.
func (p *Publisher) Publish(iv model.Interval) error {
	data, err := json.Marshal(iv)
	if err != nil {
		return err
	}
	return p.nc.Publish(p.subject, data)
}

// Close drains and closes the NATS connection.
func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Drain()
		log.Println("NATS connection drained and closed.")
	}
}
