//go:build integration

package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredpanda "github.com/testcontainers/testcontainers-go/modules/redpanda"
	"github.com/twmb/franz-go/pkg/kgo"

	audit "pawdesk/pkg/platform/audit"
)

func TestPublisher_AppendProducesEntry(t *testing.T) {
	ctx := context.Background()

	container, err := tcredpanda.Run(ctx, "docker.redpanda.com/redpandadata/redpanda:v24.1.7")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	broker, err := container.KafkaSeedBroker(ctx)
	require.NoError(t, err)

	const topic = "pawdesk.audit.test"
	pub, err := New(ctx, []string{broker}, topic)
	require.NoError(t, err)
	t.Cleanup(pub.Close)

	entry := audit.NewEntry(audit.CategorySupplier, "fetch_suppliers_complete",
		map[string]string{"count": "7"})
	require.NoError(t, pub.Append(ctx, entry))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(broker),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	t.Cleanup(consumer.Close)

	pollCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	fetches := consumer.PollFetches(pollCtx)
	require.NoError(t, fetches.Err())

	records := fetches.Records()
	require.Len(t, records, 1)
	assert.Equal(t, []byte(audit.CategorySupplier), records[0].Key)

	var got audit.Entry
	require.NoError(t, json.Unmarshal(records[0].Value, &got))
	assert.Equal(t, entry.ID, got.ID)
	assert.Equal(t, entry.Event, got.Event)
	assert.Equal(t, entry.Detail, got.Detail)
}

func TestPublisher_ListRecentIsWriteOnly(t *testing.T) {
	p := &Publisher{}
	_, err := p.ListRecent(context.Background(), audit.CategorySupplier, 10)
	assert.ErrorIs(t, err, ErrWriteOnly)
}
