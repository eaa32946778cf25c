// Package contact builds the pre-filled WhatsApp links behind every "Book Now"
// action and records booking intents without blocking the visitor.
package contact

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"
)

// DefaultNumber is the operator's WhatsApp number.
const DefaultNumber = "+6285724336853"

const whatsAppBase = "https://wa.me/"

// CustomTourMessage is sent when the visitor asks for a tailored itinerary.
const CustomTourMessage = "Hi! I'd like to create a custom tour itinerary."

// BookingMessage embeds subject in the booking greeting.
func BookingMessage(subject string) string {
	return fmt.Sprintf("Hi! I'm interested in visiting \"%s\". Could you help arrange a tour?", subject)
}

// MessageFor returns the booking message for subject, or the custom tour
// message when subject is blank.
func MessageFor(subject string) string {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return CustomTourMessage
	}
	return BookingMessage(subject)
}

// Channel is a fixed external messaging address.
type Channel struct {
	Number string
}

// NewChannel returns a channel for number, falling back to DefaultNumber.
func NewChannel(number string) Channel {
	number = strings.TrimSpace(number)
	if number == "" {
		number = DefaultNumber
	}
	return Channel{Number: number}
}

// BaseURL is the chat link without a message.
func (c Channel) BaseURL() string {
	number := c.Number
	if strings.TrimSpace(number) == "" {
		number = DefaultNumber
	}
	return whatsAppBase + digitsOnly(number)
}

// URI composes <base>?text=<percent-encoded message>.
func (c Channel) URI(message string) string {
	return c.BaseURL() + "?text=" + Encode(message)
}

// Encode percent-encodes s for a query value, writing spaces as %20.
func Encode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func digitsOnly(number string) string {
	var b strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Intent is a booking request that was handed off to the contact channel.
type Intent struct {
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	URI        string    `json:"uri"`
	Source     string    `json:"source,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Sink records booking intents.
type Sink interface {
	Record(ctx context.Context, intent Intent) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, intent Intent) error

// Record calls f.
func (f SinkFunc) Record(ctx context.Context, intent Intent) error {
	return f(ctx, intent)
}

const recordTimeout = 5 * time.Second

// Dispatcher maps subjects to contact URIs. Recording is fire-and-forget:
// sink failures are logged and never reach the caller.
type Dispatcher struct {
	channel Channel
	sink    Sink
	logger  *log.Logger
	now     func() time.Time

	wg sync.WaitGroup
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithSink records every dispatch on sink.
func WithSink(sink Sink) Option {
	return func(d *Dispatcher) { d.sink = sink }
}

// WithLogger sets the logger used for sink failures.
func WithLogger(logger *log.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithClock overrides the intent timestamp source.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		if now != nil {
			d.now = now
		}
	}
}

// NewDispatcher builds a dispatcher for channel.
func NewDispatcher(channel Channel, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		channel: channel,
		logger:  log.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Channel returns the configured contact channel.
func (d *Dispatcher) Channel() Channel {
	return d.channel
}

// Dispatch returns the contact URI for subject. source names the surface that
// triggered the booking (web, mcp, cli).
func (d *Dispatcher) Dispatch(ctx context.Context, subject, source string) string {
	message := MessageFor(subject)
	uri := d.channel.URI(message)
	if d.sink == nil {
		return uri
	}
	intent := Intent{
		Subject:    strings.TrimSpace(subject),
		Message:    message,
		URI:        uri,
		Source:     source,
		OccurredAt: d.now().UTC(),
	}
	recordCtx := context.WithoutCancel(ctx)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(recordCtx, recordTimeout)
		defer cancel()
		if err := d.sink.Record(ctx, intent); err != nil {
			d.logger.Printf("record booking intent subject=%q: %v", intent.Subject, err)
		}
	}()
	return uri
}

// Wait blocks until in-flight recordings finish. Call it on shutdown.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
