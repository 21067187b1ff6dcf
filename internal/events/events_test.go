package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/segyhp/growvest-engine/internal/config"
	"github.com/segyhp/growvest-engine/internal/domain"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockChannel struct {
	mock.Mock
}

func (m *mockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(ctx, exchange, key, msg)
	return args.Error(0)
}

func (m *mockChannel) Close() error {
	args := m.Called()
	return args.Error(0)
}

func TestAMQPPublisher_Publish(t *testing.T) {
	logger, _ := test.NewNullLogger()
	ch := &mockChannel{}
	p := &AMQPPublisher{exchange: "growvest.events", log: logger, channel: ch}

	event := domain.NewEvent(domain.EventDepositApproved, map[string]interface{}{"deposit_id": "d-1"})

	ch.On("PublishWithContext", mock.Anything, "growvest.events", domain.EventDepositApproved,
		mock.MatchedBy(func(msg amqp.Publishing) bool {
			var decoded domain.Event
			if err := json.Unmarshal(msg.Body, &decoded); err != nil {
				return false
			}
			return msg.ContentType == "application/json" &&
				msg.DeliveryMode == amqp.Persistent &&
				decoded.Type == domain.EventDepositApproved &&
				decoded.Payload["deposit_id"] == "d-1"
		})).Return(nil)

	require.NoError(t, p.Publish(context.Background(), event))
	ch.AssertExpectations(t)
}

func TestAMQPPublisher_PublishError(t *testing.T) {
	logger, _ := test.NewNullLogger()
	ch := &mockChannel{}
	p := &AMQPPublisher{exchange: "growvest.events", log: logger, channel: ch}

	ch.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("channel closed"))

	err := p.Publish(context.Background(), domain.NewEvent(domain.EventProfitDistributed, nil))

	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.EventProfitDistributed)
}

func TestAMQPPublisher_Close(t *testing.T) {
	ch := &mockChannel{}
	p := &AMQPPublisher{channel: ch, log: logrus.New()}

	ch.On("Close").Return(nil).Once()

	assert.NoError(t, p.Close())
	assert.NoError(t, p.Close())
	ch.AssertExpectations(t)
}

func TestNew_Disabled(t *testing.T) {
	p, err := New(config.EventsConfig{Enabled: false}, logrus.New())

	require.NoError(t, err)
	assert.IsType(t, NoopPublisher{}, p)
	assert.NoError(t, p.Publish(context.Background(), domain.NewEvent(domain.EventDepositRejected, nil)))
	assert.NoError(t, p.Close())
}
