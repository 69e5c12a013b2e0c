package service

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsearch-be/internal/entity"
	"docsearch-be/internal/repository/memory"
	"docsearch-be/pkg/events"
)

func TestConsumerCountsActivity(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	t.Cleanup(func() { pubSub.Close() })

	journal := memory.NewIngestJournalRepository()
	consumer := NewConsumerService(pubSub, "TEST_ACTIVITY", journal, testMetrics(), nopLogger{})
	require.NoError(t, consumer.Consume(context.Background()))

	publisher := NewPublisherService(pubSub, "TEST_ACTIVITY")
	ctx := context.Background()

	publish := func(eventType string) {
		require.NoError(t, publisher.Publish(ctx, events.BaseEvent{
			Type:       eventType,
			Data:       map[string]interface{}{"document_id": "doc-1"},
			OccurredAt: time.Now(),
		}))
	}

	publish(events.TypeDocumentIngested)
	publish(events.TypeDocumentIngested)
	publish(events.TypeSearchPerformed)
	publish(events.TypeIngestionGap)

	assert.Eventually(t, func() bool {
		s := consumer.Snapshot()
		return s.Uploads == 2 && s.Searches == 1 && s.RemoteFailures == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestConsumerSnapshotExposesPendingJournal(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	t.Cleanup(func() { pubSub.Close() })

	journal := memory.NewIngestJournalRepository()
	journal.Record(entity.IngestRecord{DocumentId: "stuck", State: entity.IngestStateStored})

	consumer := NewConsumerService(pubSub, "TEST_ACTIVITY_2", journal, testMetrics(), nopLogger{})
	s := consumer.Snapshot()
	require.Len(t, s.Pending, 1)
	assert.Equal(t, "stuck", s.Pending[0].DocumentId)
}
