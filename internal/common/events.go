package common

import (
	"context"
	"encoding/json"

	"github.com/birdsofspace/spacebirdz-backend/internal/model"
	"github.com/birdsofspace/spacebirdz-backend/pkg/pubsub"
	"github.com/birdsofspace/spacebirdz-backend/pkg/xcontext"
)

// PublishEvent sends a ledger notification to the event topic. Delivery is
// best effort: a broker failure is logged and does not roll back the ledger
// mutation that produced the event.
func PublishEvent(ctx context.Context, publisher pubsub.Publisher, eventType string, key string, data any) {
	b, err := json.Marshal(model.Event{Type: eventType, Data: data})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal %s event: %v", eventType, err)
		return
	}

	topic := xcontext.Configs(ctx).Kafka.EventTopic
	if err := publisher.Publish(ctx, topic, &pubsub.Pack{Key: []byte(key), Msg: b}); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot publish %s event: %v", eventType, err)
	}
}
