package events

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shareit-platform/service-booking/internal/kafka"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// PendingRejecter rejects the outstanding WAITING bookings of an item.
type PendingRejecter interface {
	RejectPendingForItem(ctx context.Context, itemID uuid.UUID) (int, error)
}

// ItemEventConsumer listens to catalogue item events. When an item is
// retired, its pending bookings are rejected so bookers are not left
// waiting on an item that no longer exists.
type ItemEventConsumer struct {
	consumer *kafka.Consumer
	service  PendingRejecter
	logger   *zap.Logger
}

// NewItemEventConsumer creates a new ItemEventConsumer.
func NewItemEventConsumer(
	brokers []string,
	groupID string,
	service PendingRejecter,
	logger *zap.Logger,
) *ItemEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, TopicItemEvents, logger)
	return &ItemEventConsumer{
		consumer: consumer,
		service:  service,
		logger:   logger,
	}
}

// Start begins consuming item events. This blocks until the context is cancelled.
func (c *ItemEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *ItemEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *ItemEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	var cloudEvent kafka.CloudEvent
	if err := json.Unmarshal(msg.Value, &cloudEvent); err != nil {
		c.logger.Error("failed to parse cloud event from item topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case ItemRetired:
		return c.handleItemRetired(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled item event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *ItemEventConsumer) handleItemRetired(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt ItemRetiredEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse ItemRetiredEvent data",
			zap.Error(err),
		)
		return nil // Don't retry malformed data
	}

	rejected, err := c.service.RejectPendingForItem(ctx, evt.ItemID)
	if err != nil {
		c.logger.Error("failed to reject pending bookings for retired item",
			zap.String("item_id", evt.ItemID.String()),
			zap.Error(err),
		)
		return err
	}

	c.logger.Info("rejected pending bookings for retired item",
		zap.String("item_id", evt.ItemID.String()),
		zap.Int("rejected", rejected),
	)
	return nil
}
