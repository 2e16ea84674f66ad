//go:build integration

package audit_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"taxgate/internal/audit"
	"taxgate/internal/platform/config"
	"taxgate/pkg/testutil/containers"
)

func TestKafkaSink_AppendRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	redpanda := containers.GetManager().GetRedpanda(t)

	cfg := config.KafkaConfig{
		Brokers: []string{redpanda.Broker},
		Topic:   "taxgate.audit.test",
	}

	sink, err := audit.NewKafkaSink(ctx, cfg)
	require.NoError(t, err)
	defer sink.Close()

	sent := audit.Event{
		ID:        "evt-1",
		Kind:      audit.KindReturnSubmitted,
		VRN:       "123456789",
		PeriodKey: "24A1",
		Timestamp: time.Now().UTC().Truncate(time.Millisecond),
	}
	require.NoError(t, sink.Append(ctx, sent))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.ConsumeTopics(cfg.Topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	fetchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	fetches := consumer.PollFetches(fetchCtx)
	require.NoError(t, fetches.Err())

	records := fetches.Records()
	require.Len(t, records, 1)
	require.Equal(t, "123456789", string(records[0].Key))

	var got audit.Event
	require.NoError(t, json.Unmarshal(records[0].Value, &got))
	require.Equal(t, sent, got)
}

func TestKafkaSink_TopicAlreadyExists(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	redpanda := containers.GetManager().GetRedpanda(t)

	cfg := config.KafkaConfig{
		Brokers: []string{redpanda.Broker},
		Topic:   "taxgate.audit.existing",
	}

	first, err := audit.NewKafkaSink(ctx, cfg)
	require.NoError(t, err)
	first.Close()

	second, err := audit.NewKafkaSink(ctx, cfg)
	require.NoError(t, err)
	second.Close()
}
