package testutil

import (
	"context"
	"sync"

	"github.com/birdsofspace/spacebirdz-backend/pkg/pubsub"
)

// MockPublisher records every published pack. Publish never fails unless a
// PublishFunc is set.
type MockPublisher struct {
	PublishFunc func(context.Context, string, *pubsub.Pack) error

	mutex     sync.Mutex
	published []*pubsub.Pack
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, pack)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.published = append(m.published, pack)
	return nil
}

func (m *MockPublisher) Stop(ctx context.Context) error {
	return nil
}

func (m *MockPublisher) Published() []*pubsub.Pack {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.published
}
