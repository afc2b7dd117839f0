// Package notify fans alert messages out to the configured delivery
// channels. Every transport degrades to a logged mock success when its
// credentials are absent, so development environments never lose alerts
// to missing configuration.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/centerpulse/centerpulse/internal/pkg/logger"
	pkgmetrics "github.com/centerpulse/centerpulse/internal/pkg/metrics"
)

// Recipient identifies one notification target across channels
type Recipient struct {
	Name      string
	Email     string
	Phone     string
	PushToken string
}

// Message is a channel-agnostic alert notification. Each transport
// renders it into its own wire format.
type Message struct {
	Title        string
	Body         string
	TriggerType  string
	Priority     string
	CenterName   string
	Recipients   []Recipient
	DashboardURL string
	Data         map[string]string
}

// DeliveryResult records the outcome of one channel's dispatch attempt
type DeliveryResult struct {
	Channel string `json:"channel"`
	Success bool   `json:"success"`
	Mocked  bool   `json:"mocked,omitempty"`
	Skipped bool   `json:"skipped,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Outcome classifies how a transport disposed of a message
type Outcome int

const (
	// OutcomeDelivered means the message went out over the wire
	OutcomeDelivered Outcome = iota
	// OutcomeMocked means the transport is unconfigured; the rendered
	// payload was logged instead of sent
	OutcomeMocked
	// OutcomeSkipped means no recipient was reachable on this channel;
	// nothing was rendered or sent
	OutcomeSkipped
)

// Transport delivers a message over one channel
type Transport interface {
	Channel() string
	Send(ctx context.Context, msg Message) (Outcome, error)
}

// Dispatcher fans a message out to a set of channels
type Dispatcher interface {
	Dispatch(ctx context.Context, channels []string, msg Message) []DeliveryResult
}

// MultiDispatcher dispatches to registered transports concurrently.
// One failing channel never blocks or fails the others.
type MultiDispatcher struct {
	transports map[string]Transport
	log        *logger.Logger
}

// NewDispatcher creates a dispatcher over the given transports
func NewDispatcher(log *logger.Logger, transports ...Transport) *MultiDispatcher {
	m := make(map[string]Transport, len(transports))
	for _, t := range transports {
		m[t.Channel()] = t
	}
	return &MultiDispatcher{
		transports: m,
		log:        log,
	}
}

// Dispatch sends the message on every requested channel. It returns one
// result per requested channel, in request order.
func (d *MultiDispatcher) Dispatch(ctx context.Context, channels []string, msg Message) []DeliveryResult {
	results := make([]DeliveryResult, len(channels))

	var wg sync.WaitGroup
	for i, ch := range channels {
		wg.Add(1)
		go func(i int, ch string) {
			defer wg.Done()
			results[i] = d.send(ctx, ch, msg)
		}(i, ch)
	}
	wg.Wait()

	return results
}

func (d *MultiDispatcher) send(ctx context.Context, channel string, msg Message) DeliveryResult {
	t, ok := d.transports[channel]
	if !ok {
		d.log.WithFields(map[string]interface{}{
			"channel": channel,
		}).Warn("no transport registered for channel")
		pkgmetrics.RecordDispatch(channel, "failure", 0)
		return DeliveryResult{Channel: channel, Success: false, Error: "unknown channel"}
	}

	start := time.Now()
	outcome, err := t.Send(ctx, msg)
	elapsed := time.Since(start)

	if err != nil {
		d.log.WithFields(map[string]interface{}{
			"channel": channel,
			"center":  msg.CenterName,
		}).ErrorWithErr(err, "notification delivery failed")
		pkgmetrics.RecordDispatch(channel, "failure", elapsed)
		return DeliveryResult{Channel: channel, Success: false, Error: err.Error()}
	}

	switch outcome {
	case OutcomeMocked:
		pkgmetrics.RecordDispatch(channel, "mocked", elapsed)
	case OutcomeSkipped:
		pkgmetrics.RecordDispatch(channel, "skipped", elapsed)
	default:
		pkgmetrics.RecordDispatch(channel, "success", elapsed)
	}

	return DeliveryResult{
		Channel: channel,
		Success: true,
		Mocked:  outcome == OutcomeMocked,
		Skipped: outcome == OutcomeSkipped,
	}
}
