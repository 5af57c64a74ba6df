// Package indexer fires the fire-and-forget background indexing
// notifications described in spec §5: after a successful write that
// changes base text or annotations, the service may notify an external
// indexer. Calls are asynchronous, never participate in the request's
// transaction, use a 10s timeout, and never retry.
package indexer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const callTimeout = 10 * time.Second

// Event is the payload dispatched for one changed resource.
type Event struct {
	Kind            string `json:"kind"` // "expression" | "manifestation" | "annotation"
	ExpressionID    string `json:"expression_id,omitempty"`
	ManifestationID string `json:"manifestation_id,omitempty"`
	AnnotationID    string `json:"annotation_id,omitempty"`
}

// Notifier is the process-wide singleton dispatching events to EventBridge.
// A nil Notifier (constructed when no indexer URL/bus is configured) turns
// every Notify call into a no-op, matching spec §6: "absent disables
// background calls".
type Notifier struct {
	client  *eventbridge.Client
	busName string
	source  string
	log     *zap.Logger
	breaker *gobreaker.CircuitBreaker
}

func New(client *eventbridge.Client, busName, source string, log *zap.Logger) *Notifier {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "indexer",
		MaxRequests: 1,
		Interval:    30 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 5 && float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("indexer circuit breaker state change", zap.String("from", from.String()), zap.String("to", to.String()))
		},
	})
	return &Notifier{client: client, busName: busName, source: source, log: log, breaker: breaker}
}

// Notify dispatches ev in a new background goroutine, per spec §5's
// "dedicated background worker, no retries, no participation in the
// request's transaction or response". Failures are logged and discarded.
func (n *Notifier) Notify(ev Event) {
	if n == nil || n.client == nil {
		return
	}
	go n.send(ev)
}

func (n *Notifier) send(ev Event) {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	payload, err := json.Marshal(ev)
	if err != nil {
		n.log.Error("marshal indexer event", zap.Error(err))
		return
	}

	_, err = n.breaker.Execute(func() (any, error) {
		_, err := n.client.PutEvents(ctx, &eventbridge.PutEventsInput{
			Entries: []types.PutEventsRequestEntry{{
				EventBusName: aws.String(n.busName),
				Source:       aws.String(n.source),
				DetailType:   aws.String(ev.Kind),
				Detail:       aws.String(string(payload)),
			}},
		})
		return nil, err
	})
	if err != nil {
		n.log.Warn("indexer notification failed, discarding", zap.String("kind", ev.Kind), zap.Error(err))
	}
}
