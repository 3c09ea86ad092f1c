package services

import (
	"context"
	"time"

	"github.com/yungbote/talent-analytics-backend/internal/clients/redis"
	"github.com/yungbote/talent-analytics-backend/internal/observability"
	"github.com/yungbote/talent-analytics-backend/internal/platform/logger"
)

const (
	EventAttritionScored          = "attrition.scored"
	EventHiPoEvaluated            = "hipo.evaluated"
	EventManagerAssessmentCreated = "manager_assessment.created"
)

// EventNotifier fans domain outcomes out to subscribers. Failures are logged, never returned.
type EventNotifier interface {
	Notify(ctx context.Context, ev redis.Event)
}

type busNotifier struct {
	log *logger.Logger
	bus redis.EventBus
}

// NewEventNotifier publishes on bus, or discards events when bus is nil.
func NewEventNotifier(log *logger.Logger, bus redis.EventBus) EventNotifier {
	if bus == nil {
		return noopNotifier{}
	}
	return &busNotifier{log: log.With("service", "EventNotifier"), bus: bus}
}

func (n *busNotifier) Notify(ctx context.Context, ev redis.Event) {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	err := n.bus.Publish(pubCtx, ev)
	observability.Current().IncEventPublished(ev.Type, err)
	if err != nil {
		n.log.Warn("event publish failed", "event", ev.Type, "error", err)
	}
}

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, redis.Event) {}
