// Package kafka streams audit entries to a Kafka topic so external
// collectors (SIEM, warehouse loaders) can consume the trail without
// touching the service. Write-only; history queries stay on Postgres.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	audit "pawdesk/pkg/platform/audit"
)

// ErrWriteOnly is returned for query operations; Kafka is a sink here.
var ErrWriteOnly = errors.New("kafka audit publisher is write-only")

// Publisher produces one JSON record per audit entry, keyed by category so
// per-category ordering survives partitioning.
type Publisher struct {
	client *kgo.Client
	topic  string
}

// New connects to the brokers and ensures the topic exists.
func New(ctx context.Context, brokers []string, topic string) (*Publisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	adm := kadm.NewClient(client)
	resp, err := adm.CreateTopics(ctx, 1, 1, nil, topic)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("create audit topic: %w", err)
	}
	for _, r := range resp {
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			client.Close()
			return nil, fmt.Errorf("create audit topic %q: %w", r.Topic, r.Err)
		}
	}

	return &Publisher{client: client, topic: topic}, nil
}

// Append produces the entry and waits for the broker ack. The audit worker
// is the only caller, so the wait happens off the request path.
func (p *Publisher) Append(ctx context.Context, entry audit.Entry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal audit entry: %w", err)
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(entry.Category),
		Value: payload,
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit entry: %w", err)
	}
	return nil
}

// ListRecent is unsupported; consumers read the topic directly.
func (p *Publisher) ListRecent(context.Context, audit.Category, int) ([]audit.Entry, error) {
	return nil, ErrWriteOnly
}

// Close flushes buffered records and releases the client.
func (p *Publisher) Close() {
	p.client.Close()
}
