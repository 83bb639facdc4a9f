package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	marketengine "token-pulse-go/internal/market-engine"
	"token-pulse-go/internal/models"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafkaGo.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkaGo.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func quietLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestPublishTick(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := marketengine.Tick{
		Sequence: 4,
		At:       at,
		Updates: []marketengine.PriceUpdate{
			{TokenID: "new-0", Previous: 1, Price: 1.02, Direction: models.DirectionUp},
			{TokenID: "new-1", Previous: 2, Price: 1.95, Direction: models.DirectionDown},
		},
	}

	testCases := []struct {
		name        string
		tick        marketengine.Tick
		writeErr    error
		expectErr   bool
		expectedMsg int
	}{
		{name: "one record per update", tick: tick, expectedMsg: 2},
		{name: "empty tick writes nothing", tick: marketengine.Tick{Sequence: 5}, expectedMsg: 0},
		{name: "writer failure", tick: tick, writeErr: errors.New("broker down"), expectErr: true},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			writer := &fakeWriter{err: tt.writeErr}
			publisher := newTickPublisher(writer, quietLogger())

			err := publisher.PublishTick(context.Background(), tt.tick)
			if tt.expectErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.writeErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, writer.msgs, tt.expectedMsg)

			for i, msg := range writer.msgs {
				update := tt.tick.Updates[i]
				assert.Equal(t, update.TokenID, string(msg.Key))

				var decoded PriceMessage
				require.NoError(t, json.Unmarshal(msg.Value, &decoded))
				assert.Equal(t, tt.tick.Sequence, decoded.Sequence)
				assert.Equal(t, at.UnixMilli(), decoded.At)
				assert.Equal(t, update, decoded.Update)
			}
		})
	}
}

func TestPublisherClosesWriter(t *testing.T) {
	writer := &fakeWriter{}
	publisher := newTickPublisher(writer, quietLogger())

	require.NoError(t, publisher.Close())
	assert.True(t, writer.closed)
}

func TestPublisherIsTickSink(t *testing.T) {
	var _ marketengine.TickSink = (*TickPublisher)(nil)
}
