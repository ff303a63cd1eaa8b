package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vendorlink/vendorlink-backend/pkg/logger"
	"github.com/vendorlink/vendorlink-backend/pkg/pubsub"
)

// Event types emitted on project lifecycle transitions.
const (
	EventProjectPublished = "project.published"
	EventVendorAssigned   = "project.vendor_assigned"
	EventProjectCompleted = "project.completed"
	EventProjectCancelled = "project.cancelled"
	EventProjectRerouted  = "project.rerouted"
)

// Event is a lifecycle notification payload.
type Event struct {
	Type       string         `json:"type"`
	ProjectID  uuid.UUID      `json:"project_id"`
	OccurredAt time.Time      `json:"occurred_at"`
	Data       map[string]any `json:"data,omitempty"`
}

// Notifier emits lifecycle events. Delivery is best-effort: failures are
// logged and never surfaced to the caller, so a broker outage cannot block a
// state transition.
type Notifier interface {
	ProjectEvent(ctx context.Context, event Event)
}

// Publisher is the pubsub surface the notifier writes through.
type Publisher interface {
	Publish(ctx context.Context, data []byte, attributes map[string]string) error
}

var _ Publisher = (*pubsub.Client)(nil)

type pubsubNotifier struct {
	publisher Publisher
	logg      *logger.Logger
}

// NewPubSubNotifier wires a notifier backed by the lifecycle topic.
func NewPubSubNotifier(publisher Publisher, logg *logger.Logger) (Notifier, error) {
	if publisher == nil {
		return nil, fmt.Errorf("publisher required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &pubsubNotifier{publisher: publisher, logg: logg}, nil
}

func (n *pubsubNotifier) ProjectEvent(ctx context.Context, event Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		n.logg.Warn(ctx, "marshal lifecycle event failed")
		return
	}
	attributes := map[string]string{
		"event_type": event.Type,
		"project_id": event.ProjectID.String(),
	}
	if err := n.publisher.Publish(ctx, payload, attributes); err != nil {
		fields := map[string]any{"event_type": event.Type, "project_id": event.ProjectID.String()}
		n.logg.Warn(n.logg.WithFields(ctx, fields), "publish lifecycle event failed")
	}
}

type noopNotifier struct{}

// NewNoopNotifier returns a notifier that drops every event. Used when the
// lifecycle topic is not configured.
func NewNoopNotifier() Notifier {
	return noopNotifier{}
}

func (noopNotifier) ProjectEvent(context.Context, Event) {}
