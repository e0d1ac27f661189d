// Package notification fans placed orders out to an SNS topic.
package notification

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"go.uber.org/zap"

	"github.com/vendorhub/backend/internal/domain/ledger"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// Publisher is the part of the SNS client the notifier needs
type Publisher interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Serializer turns an event into the message body
type Serializer interface {
	Serialize(event shared.DomainEvent) ([]byte, error)
}

// OrderNotifier publishes an SNS message for every placed cart
type OrderNotifier struct {
	client     Publisher
	topicARN   string
	serializer Serializer
	logger     *zap.Logger
}

// NewOrderNotifier creates a new OrderNotifier
func NewOrderNotifier(client Publisher, topicARN string, serializer Serializer, logger *zap.Logger) *OrderNotifier {
	return &OrderNotifier{client: client, topicARN: topicARN, serializer: serializer, logger: logger}
}

// NewSNSClient creates an SNS client from a loaded AWS config
func NewSNSClient(cfg aws.Config) *sns.Client {
	return sns.NewFromConfig(cfg)
}

// EventTypes returns the event types this handler is interested in
func (n *OrderNotifier) EventTypes() []string {
	return []string{ledger.EventTypeOrdersPlaced}
}

// Handle publishes the event as JSON with the event type as a message attribute
func (n *OrderNotifier) Handle(ctx context.Context, event shared.DomainEvent) error {
	placed, ok := event.(*ledger.OrdersPlacedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	body, err := n.serializer.Serialize(placed)
	if err != nil {
		return fmt.Errorf("serialize %s: %w", event.EventType(), err)
	}

	out, err := n.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.topicARN),
		Message:  aws.String(string(body)),
		Subject:  aws.String("Orders placed"),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"event_type": {
				DataType:    aws.String("String"),
				StringValue: aws.String(event.EventType()),
			},
			"vendor_id": {
				DataType:    aws.String("String"),
				StringValue: aws.String(placed.VendorID.String()),
			},
		},
	})
	if err != nil {
		n.logger.Error("Failed to publish order notification",
			zap.String("vendor_id", placed.VendorID.String()),
			zap.Strings("order_numbers", placed.OrderNumbers),
			zap.Error(err))
		return err
	}

	n.logger.Debug("Order notification published",
		zap.String("message_id", aws.ToString(out.MessageId)),
		zap.Int("orders", len(placed.OrderNumbers)))
	return nil
}

var _ shared.EventHandler = (*OrderNotifier)(nil)
