package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPublishContinuesAfterHandlerError(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(zap.NewNop())

	var seen []string
	dispatcher.Subscribe(EventComplaintCreated, func(context.Context, Event) error {
		seen = append(seen, "first")
		return errors.New("boom")
	})
	dispatcher.Subscribe(EventComplaintCreated, func(_ context.Context, e Event) error {
		seen = append(seen, "second")
		assert.EqualValues(t, 7, e.ComplaintID)
		return nil
	})
	dispatcher.Subscribe(EventComplaintDeleted, func(context.Context, Event) error {
		seen = append(seen, "other")
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventComplaintCreated, ComplaintID: 7}))
	assert.Equal(t, []string{"first", "second"}, seen)
}
