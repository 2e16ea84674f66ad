package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxgate/internal/platform/logger"
)

func TestPublisher_StampsIDAndTimestamp(t *testing.T) {
	p := NewPublisher(4)

	err := p.Emit(context.Background(), Event{Kind: KindReturnSubmitted, VRN: "123456789"})
	require.NoError(t, err)

	event := <-p.Inbox()
	assert.NotEmpty(t, event.ID)
	assert.False(t, event.Timestamp.IsZero())
	assert.Equal(t, KindReturnSubmitted, event.Kind)
}

func TestPublisher_DropsWhenFull(t *testing.T) {
	p := NewPublisher(1)

	require.NoError(t, p.Emit(context.Background(), Event{Kind: KindReturnSubmitted}))
	err := p.Emit(context.Background(), Event{Kind: KindReturnSubmitted})
	assert.Error(t, err, "a full inbox must drop rather than block")
}

func TestWorker_DrainsInboxIntoSink(t *testing.T) {
	p := NewPublisher(4)
	sink := NewMemorySink()
	worker := NewWorker(sink, p.Inbox(), logger.New())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	require.NoError(t, p.Emit(ctx, Event{Kind: KindReturnSubmitted, VRN: "123456789", PeriodKey: "24A1"}))
	require.NoError(t, p.Emit(ctx, Event{Kind: KindReturnSubmitted, VRN: "123456789", PeriodKey: "24A2"}))

	assert.Eventually(t, func() bool {
		return len(sink.Events()) == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	events := sink.Events()
	assert.Equal(t, "24A1", events[0].PeriodKey)
	assert.Equal(t, "24A2", events[1].PeriodKey)
}
