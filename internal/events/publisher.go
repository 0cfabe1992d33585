// Package events publishes rating lifecycle events to Kafka. Payloads are
// JSON; per-ticker events are throttled so a full-universe run does not
// flood the broker in one burst.
package events

import (
	"context"

	"golang.org/x/time/rate"

	"minerva/internal/adapters/kafka"
	"minerva/pkg/logger"
)

// Publisher publishes rating events to Kafka
type Publisher struct {
	producer *kafka.Producer
	limiter  *rate.Limiter
	log      *logger.Logger
}

// NewPublisher creates a new event publisher. publishRate bounds
// per-ticker event throughput in events per second.
func NewPublisher(producer *kafka.Producer, publishRate float64) *Publisher {
	return &Publisher{
		producer: producer,
		limiter:  rate.NewLimiter(rate.Limit(publishRate), 1),
		log:      logger.Get().With("component", "event_publisher"),
	}
}

// PublishRunCompleted publishes a run completed event
func (p *Publisher) PublishRunCompleted(ctx context.Context, event *RunCompletedEvent) error {
	return p.producer.Publish(ctx, kafka.TopicRunCompleted, event.RunID.String(), event)
}

// PublishRunFailed publishes a run failed event
func (p *Publisher) PublishRunFailed(ctx context.Context, event *RunFailedEvent) error {
	return p.producer.Publish(ctx, kafka.TopicRunFailed, event.RunID.String(), event)
}

// PublishGradeChanged publishes a per-ticker grade change, keyed by ticker
// so consumers see per-ticker ordering. Blocks on the rate limiter.
func (p *Publisher) PublishGradeChanged(ctx context.Context, event *GradeChangedEvent) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return err
	}
	return p.producer.Publish(ctx, kafka.TopicGradeChanged, event.Ticker, event)
}
