package service

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"docsearch-be/internal/dto"
	"docsearch-be/internal/pkg/logger"
	"docsearch-be/internal/repository/contract"
	"docsearch-be/pkg/events"
	"docsearch-be/pkg/metrics"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
	Snapshot() dto.ActivityStats
}

// consumerService drains the activity bus: it keeps the lifetime counters
// behind /api/stats, mirrors the pending-reconciliation set into the metrics
// gauge, and writes the activity log.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	journal   contract.IngestJournal
	metrics   *metrics.Metrics
	logger    logger.ILogger

	uploads        atomic.Int64
	searches       atomic.Int64
	remoteFailures atomic.Int64
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	journal contract.IngestJournal,
	metrics *metrics.Metrics,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		journal:   journal,
		metrics:   metrics,
		logger:    logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var event events.BaseEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		// Ack malformed messages, retrying cannot fix them.
		cs.logger.Error("activity", "Failed to unmarshal activity event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack()
		return
	}

	switch event.Type {
	case events.TypeDocumentIngested:
		cs.uploads.Add(1)
	case events.TypeSearchPerformed:
		cs.searches.Add(1)
	case events.TypeIngestionGap:
		cs.remoteFailures.Add(1)
	}

	cs.metrics.IngestPending.Set(float64(len(cs.journal.Pending())))
	cs.logger.Info("activity", event.Type, event.Data)
	msg.Ack()
}

func (cs *consumerService) Snapshot() dto.ActivityStats {
	return dto.ActivityStats{
		Uploads:        cs.uploads.Load(),
		Searches:       cs.searches.Load(),
		RemoteFailures: cs.remoteFailures.Load(),
		Pending:        cs.journal.Pending(),
	}
}
