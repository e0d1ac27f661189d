package notification

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vendorhub/backend/internal/domain/ledger"
	"github.com/vendorhub/backend/internal/infrastructure/event"
	"github.com/vendorhub/backend/tests/testutil"
)

type fakePublisher struct {
	inputs []*sns.PublishInput
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-1")}, nil
}

func placedEvent(t *testing.T) *ledger.OrdersPlacedEvent {
	t.Helper()
	vendorID := uuid.New()
	o1, err := ledger.NewOrder("ORD001", vendorID, "Ada", ledger.LineItem{Name: "Bolt", Price: decimal.NewFromInt(5), Quantity: 2})
	require.NoError(t, err)
	o2, err := ledger.NewOrder("ORD002", vendorID, "Ada", ledger.LineItem{Name: "Nut", Price: decimal.NewFromInt(1), Quantity: 3})
	require.NoError(t, err)
	return ledger.NewOrdersPlacedEvent(vendorID, []*ledger.Order{o1, o2})
}

func TestOrderNotifier_Handle(t *testing.T) {
	pub := &fakePublisher{}
	n := NewOrderNotifier(pub, "arn:aws:sns:us-east-1:123456789012:orders", event.NewEventSerializer(), zap.NewNop())
	assert.Equal(t, []string{ledger.EventTypeOrdersPlaced}, n.EventTypes())

	e := placedEvent(t)
	require.NoError(t, n.Handle(context.Background(), e))
	require.Len(t, pub.inputs, 1)

	in := pub.inputs[0]
	assert.Equal(t, "arn:aws:sns:us-east-1:123456789012:orders", aws.ToString(in.TopicArn))
	assert.Equal(t, ledger.EventTypeOrdersPlaced, aws.ToString(in.MessageAttributes["event_type"].StringValue))
	assert.Equal(t, e.VendorID.String(), aws.ToString(in.MessageAttributes["vendor_id"].StringValue))

	var body struct {
		OrderNumbers []string        `json:"order_numbers"`
		Total        decimal.Decimal `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(aws.ToString(in.Message)), &body))
	assert.Equal(t, []string{"ORD001", "ORD002"}, body.OrderNumbers)
	assert.True(t, decimal.NewFromInt(13).Equal(body.Total))
}

func TestOrderNotifier_PublishError(t *testing.T) {
	pub := &fakePublisher{err: errors.New("throttled")}
	n := NewOrderNotifier(pub, "arn", event.NewEventSerializer(), zap.NewNop())
	err := n.Handle(context.Background(), placedEvent(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}

func TestOrderNotifier_RejectsOtherEvents(t *testing.T) {
	pub := &fakePublisher{}
	n := NewOrderNotifier(pub, "arn", event.NewEventSerializer(), zap.NewNop())
	assert.Error(t, n.Handle(context.Background(), testutil.NewTestEvent("Other")))
	assert.Empty(t, pub.inputs)
}
