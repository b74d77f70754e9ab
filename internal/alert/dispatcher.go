package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// Publisher pushes an alert payload onto a logical transport channel.
// Implemented by the Redis bus in infra.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// EmailSender delivers stock alerts to human recipients.
type EmailSender interface {
	SendAlert(to []string, subject, body string) error
}

// WebhookSender posts system events to the operations webhook.
type WebhookSender interface {
	Post(ctx context.Context, payload interface{}) error
}

const dispatchBuffer = 256

// Dispatcher performs best-effort, at-most-once delivery of alert events.
// Dispatch is a bounded async handoff: ledger callers never block on a slow
// mail server or webhook endpoint, and delivery failures are logged and
// swallowed — they never propagate back to the mutation that raised the
// event. No retries.
type Dispatcher struct {
	pub        Publisher
	mailer     EmailSender
	webhook    WebhookSender
	recipients []string

	jobs chan Event
	wg   sync.WaitGroup
	once sync.Once
}

// NewDispatcher wires the delivery channels. Any of pub, mailer, or webhook
// may be nil; that channel is then skipped.
func NewDispatcher(pub Publisher, mailer EmailSender, webhook WebhookSender, recipients []string) *Dispatcher {
	return &Dispatcher{
		pub:        pub,
		mailer:     mailer,
		webhook:    webhook,
		recipients: recipients,
		jobs:       make(chan Event, dispatchBuffer),
	}
}

// Start launches the delivery workers. They drain until Stop is called.
func (d *Dispatcher) Start(ctx context.Context, workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			for ev := range d.jobs {
				d.deliver(ctx, ev)
			}
		}()
	}
	log.Info().Int("workers", workers).Msg("alert dispatcher started")
}

// Stop closes the handoff queue and waits for in-flight deliveries.
func (d *Dispatcher) Stop() {
	d.once.Do(func() { close(d.jobs) })
	d.wg.Wait()
}

// Dispatch hands an event to the delivery workers without blocking.
// When the buffer is full the event is dropped — at-most-once is the
// contract, and inventory mutations must never stall on alert I/O.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.jobs <- ev:
	default:
		log.Warn().Str("kind", string(ev.Kind)).Msg("alert queue full, event dropped")
	}
}

func (d *Dispatcher) deliver(ctx context.Context, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Str("kind", string(ev.Kind)).Msg("alert: marshal event")
		return
	}

	if d.pub != nil {
		if err := d.pub.Publish(ctx, ev.Channel(), payload); err != nil {
			log.Error().Err(err).
				Str("channel", ev.Channel()).
				Str("kind", string(ev.Kind)).
				Msg("alert: publish failed")
		}
	}

	switch ev.Kind {
	case KindLowStock, KindExpiryWarning:
		d.sendEmail(ev)
	case KindHighErrorRate, KindSlowResponse:
		d.sendWebhook(ctx, ev)
	}
}

func (d *Dispatcher) sendEmail(ev Event) {
	if d.mailer == nil || len(d.recipients) == 0 {
		return
	}

	var subject, body string
	switch ev.Kind {
	case KindLowStock:
		subject = fmt.Sprintf("[%s] Low stock: product %d", ev.Severity, ev.ProductID)
		body = fmt.Sprintf("Product %d in warehouse %d is down to %d units.",
			ev.ProductID, ev.WarehouseID, ev.Quantity)
	case KindExpiryWarning:
		subject = fmt.Sprintf("[%s] Expiry warning: product %d", ev.Severity, ev.ProductID)
		body = fmt.Sprintf("Product %d in warehouse %d (%d units) expires in %d days.",
			ev.ProductID, ev.WarehouseID, ev.Quantity, ev.DaysRemaining)
	}

	if err := d.mailer.SendAlert(d.recipients, subject, body); err != nil {
		log.Error().Err(err).Str("kind", string(ev.Kind)).Msg("alert: email delivery failed")
		return
	}
	log.Info().Str("kind", string(ev.Kind)).Uint("product_id", ev.ProductID).Msg("alert email sent")
}

func (d *Dispatcher) sendWebhook(ctx context.Context, ev Event) {
	if d.webhook == nil {
		return
	}
	if err := d.webhook.Post(ctx, ev); err != nil {
		log.Error().Err(err).Str("kind", string(ev.Kind)).Msg("alert: webhook delivery failed")
		return
	}
	log.Info().Str("kind", string(ev.Kind)).Float64("value", ev.Value).Msg("alert webhook sent")
}
