package rabbitmq

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suchimauz/gcal-booking-agent/internal/config"
	"github.com/suchimauz/gcal-booking-agent/internal/core/domain"
	"github.com/suchimauz/gcal-booking-agent/internal/core/ports/out"
)

type nopLogger struct{}

func (nopLogger) Debug(event string, fields out.LogFields)         {}
func (nopLogger) Info(event string, fields out.LogFields)          {}
func (nopLogger) Warn(event string, fields out.LogFields)          {}
func (nopLogger) Error(event string, fields out.LogFields)         {}
func (l nopLogger) WithFields(fields out.LogFields) out.LoggerPort { return l }
func (l nopLogger) WithModule(module string) out.LoggerPort        { return l }

type recordingUseCase struct {
	invalidatedDays []time.Time
	invalidatedAll  int
}

func (r *recordingUseCase) Handle(ctx context.Context, sessionID uuid.UUID, text string) (string, *domain.ConversationState, error) {
	return "", nil, nil
}

func (r *recordingUseCase) History(ctx context.Context, sessionID uuid.UUID) (*domain.ConversationState, bool) {
	return nil, false
}

func (r *recordingUseCase) InvalidateBusyCache(ctx context.Context, day time.Time) {
	r.invalidatedDays = append(r.invalidatedDays, day)
}

func (r *recordingUseCase) InvalidateAllBusyCache(ctx context.Context) {
	r.invalidatedAll++
}

func newTestListener(useCase *recordingUseCase) *CalendarEventListener {
	return &CalendarEventListener{
		useCase: useCase,
		cfg:     &config.Config{},
		logger:  nopLogger{},
	}
}

func TestParseRoutingKey(t *testing.T) {
	listener := newTestListener(&recordingUseCase{})

	parsed, err := listener.parseRoutingKey(amqp.Delivery{RoutingKey: "gcal.booking-agent.event.store"})
	require.NoError(t, err)
	assert.Equal(t, "gcal", parsed.Source)
	assert.Equal(t, "booking-agent", parsed.Receiver)
	assert.Equal(t, CacheResourceTypeEvent, parsed.ResourceType)
	assert.Equal(t, "store", parsed.Action)

	_, err = listener.parseRoutingKey(amqp.Delivery{RoutingKey: "gcal.booking-agent.event"})
	assert.Error(t, err)
}

func TestProcessEventMessageInvalidatesDay(t *testing.T) {
	useCase := &recordingUseCase{}
	listener := newTestListener(useCase)

	err := listener.processEventMessage(context.Background(), amqp.Delivery{
		RoutingKey: "gcal.booking-agent.event.store",
		Body:       []byte(`{"id": "evt-1", "start": "2025-03-11T15:00:00Z"}`),
	})
	require.NoError(t, err)

	require.Len(t, useCase.invalidatedDays, 1)
	assert.Equal(t, 11, useCase.invalidatedDays[0].Day())
}

func TestProcessEventMessageSkipsForeignResourceType(t *testing.T) {
	useCase := &recordingUseCase{}
	listener := newTestListener(useCase)

	err := listener.processEventMessage(context.Background(), amqp.Delivery{
		RoutingKey: "gcal.booking-agent.unknown.store",
		Body:       []byte(`{}`),
	})
	require.NoError(t, err)
	assert.Empty(t, useCase.invalidatedDays)
}

func TestProcessEventMessageRejectsBadPayload(t *testing.T) {
	useCase := &recordingUseCase{}
	listener := newTestListener(useCase)

	err := listener.processEventMessage(context.Background(), amqp.Delivery{
		RoutingKey: "gcal.booking-agent.event.store",
		Body:       []byte(`{"id": "evt-1", "start": "not-a-date"}`),
	})
	assert.Error(t, err)
	assert.Empty(t, useCase.invalidatedDays)
}

func TestProcessAllMessageInvalidatesEverything(t *testing.T) {
	useCase := &recordingUseCase{}
	listener := newTestListener(useCase)

	err := listener.processAllMessage(context.Background(), amqp.Delivery{
		RoutingKey: "gcal.booking-agent._all_.invalidate",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, useCase.invalidatedAll)
}

func TestNewCalendarEventListenerDisabled(t *testing.T) {
	cfg := &config.Config{}
	cfg.RabbitMQ.Enabled = false

	listener, err := NewCalendarEventListener(&recordingUseCase{}, cfg, nopLogger{})
	require.NoError(t, err)
	assert.Nil(t, listener)

	// Stop безопасен и для невключенного слушателя
	assert.NoError(t, listener.Stop())
}
