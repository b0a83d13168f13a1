package consumer_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/towet/payroll-processing-sys/internal/dashboard"
	"github.com/towet/payroll-processing-sys/internal/events"
	"github.com/towet/payroll-processing-sys/internal/messaging/kafka"
	"github.com/towet/payroll-processing-sys/internal/messaging/kafka/consumer"
	"github.com/towet/payroll-processing-sys/internal/payslip"
	paysliperrors "github.com/towet/payroll-processing-sys/internal/payslip/errors"
	"github.com/towet/payroll-processing-sys/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// fakeReader hands out msgs in order, then blocks until the context ends.
type fakeReader struct {
	mu        sync.Mutex
	msgs      []kafkago.Message
	committed []int64
	drained   chan struct{}
}

func newFakeReader(msgs ...kafkago.Message) *fakeReader {
	return &fakeReader{msgs: msgs, drained: make(chan struct{})}
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	r.mu.Lock()
	if len(r.msgs) > 0 {
		msg := r.msgs[0]
		r.msgs = r.msgs[1:]
		r.mu.Unlock()
		return msg, nil
	}
	r.mu.Unlock()

	select {
	case <-r.drained:
	default:
		close(r.drained)
	}
	<-ctx.Done()
	return kafkago.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kafkago.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func runUntilDrained(t *testing.T, reader *fakeReader, handle consumer.HandlerFunc) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		consumer.Run(ctx, reader, handle, zap.NewNop())
		close(done)
	}()

	select {
	case <-reader.drained:
	case <-time.After(2 * time.Second):
		t.Fatal("reader was not drained")
	}
	cancel()
	<-done
}

func TestRun_CommitPolicy(t *testing.T) {
	consumer.RetryBackoff = time.Millisecond

	reader := newFakeReader(
		kafkago.Message{Offset: 1, Value: []byte("ok")},
		kafkago.Message{Offset: 2, Value: []byte("skip")},
		kafkago.Message{Offset: 3, Value: []byte("fail")},
		kafkago.Message{Offset: 4, Value: []byte("flaky")},
	)

	var mu sync.Mutex
	attempts := map[string]int{}
	runUntilDrained(t, reader, func(ctx context.Context, msg kafkago.Message) error {
		mu.Lock()
		defer mu.Unlock()
		attempts[string(msg.Value)]++
		switch string(msg.Value) {
		case "skip":
			return consumer.ErrSkip
		case "fail":
			return errors.New("broker hiccup")
		case "flaky":
			if attempts["flaky"] < 2 {
				return errors.New("db busy")
			}
		}
		return nil
	})

	assert.Equal(t, []int64{1, 2, 3, 4}, reader.committed)
	assert.Equal(t, 1, attempts["ok"])
	assert.Equal(t, 1, attempts["skip"])
	assert.Equal(t, consumer.MaxAttempts, attempts["fail"])
	assert.Equal(t, 2, attempts["flaky"])
}

func TestRun_CancelDuringRetryLeavesMessageUncommitted(t *testing.T) {
	consumer.RetryBackoff = time.Hour

	reader := newFakeReader(kafkago.Message{Offset: 7, Value: []byte("fail")})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	failed := make(chan struct{}, 1)
	go func() {
		consumer.Run(ctx, reader, func(ctx context.Context, msg kafkago.Message) error {
			failed <- struct{}{}
			return errors.New("db down")
		}, zap.NewNop())
		close(done)
	}()

	select {
	case <-failed:
	case <-time.After(2 * time.Second):
		t.Fatal("handler was not called")
	}
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop")
	}
	assert.Empty(t, reader.committed)
}

type fakeGenerator struct {
	got []payslip.GenerateRequest
	rid string
	err error
}

func (g *fakeGenerator) Generate(ctx context.Context, req payslip.GenerateRequest) (payslip.PayslipResponse, error) {
	g.got = append(g.got, req)
	g.rid = contextutil.GetRequestID(ctx)
	if g.err != nil {
		return payslip.PayslipResponse{}, g.err
	}
	return payslip.PayslipResponse{PayslipNumber: "PS-000001"}, nil
}

func payslipRequestMessage(t *testing.T) kafkago.Message {
	t.Helper()
	body, err := json.Marshal(events.PayslipRequestedEvent{
		EventType:  events.EventPayslipRequested,
		RequestID:  "req-9",
		EmployeeID: "e-1",
		Month:      "May",
		Year:       2024,
	})
	assert.NoError(t, err)
	return kafkago.Message{Value: body}
}

func TestPayslipRequestedHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("generates with request id", func(t *testing.T) {
		gen := &fakeGenerator{}
		err := consumer.PayslipRequestedHandler(gen, zap.NewNop())(ctx, payslipRequestMessage(t))

		assert.NoError(t, err)
		assert.Equal(t, []payslip.GenerateRequest{{EmployeeID: "e-1", Month: "May", Year: 2024}}, gen.got)
		assert.Equal(t, "req-9", gen.rid)
	})

	t.Run("undecodable payload is skipped", func(t *testing.T) {
		err := consumer.PayslipRequestedHandler(&fakeGenerator{}, zap.NewNop())(ctx, kafkago.Message{Value: []byte("{")})
		assert.ErrorIs(t, err, consumer.ErrSkip)
	})

	t.Run("permanent failure is skipped", func(t *testing.T) {
		gen := &fakeGenerator{err: paysliperrors.ErrInvalidMonth}
		err := consumer.PayslipRequestedHandler(gen, zap.NewNop())(ctx, payslipRequestMessage(t))
		assert.ErrorIs(t, err, consumer.ErrSkip)
	})

	t.Run("transient failure is retried", func(t *testing.T) {
		gen := &fakeGenerator{err: errors.New("db down")}
		err := consumer.PayslipRequestedHandler(gen, zap.NewNop())(ctx, payslipRequestMessage(t))
		assert.Error(t, err)
		assert.NotErrorIs(t, err, consumer.ErrSkip)
	})
}

type fakeRecorder struct {
	entries []dashboard.ActivityEntry
}

func (r *fakeRecorder) Record(ctx context.Context, entry dashboard.ActivityEntry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func TestActivityHandler(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)

	t.Run("leave decision", func(t *testing.T) {
		rec := &fakeRecorder{}
		body, _ := json.Marshal(events.LeaveDecidedEvent{
			LeaveID:      "l-1",
			EmployeeName: "Ada Lovelace",
			LeaveType:    "annual",
			Status:       "approved",
			DecidedBy:    "admin@example.com",
			OccurredAt:   at,
		})
		msg := kafkago.Message{
			Value:   body,
			Headers: []kafkago.Header{{Key: kafka.HeaderEventType, Value: []byte(events.EventLeaveDecided)}},
		}

		assert.NoError(t, consumer.ActivityHandler(rec)(ctx, msg))
		assert.Len(t, rec.entries, 1)
		assert.Equal(t, dashboard.ActivityLeave, rec.entries[0].Type)
		assert.Equal(t, "Ada Lovelace annual leave request was approved", rec.entries[0].Description)
		assert.Equal(t, "admin@example.com", rec.entries[0].Actor)
		assert.Equal(t, at, rec.entries[0].OccurredAt)
	})

	t.Run("payslip generated", func(t *testing.T) {
		rec := &fakeRecorder{}
		body, _ := json.Marshal(events.PayslipGeneratedEvent{
			PayslipID:     "p-1",
			PayslipNumber: "PS-000004",
			EmployeeName:  "Grace Hopper",
			Month:         "May",
			Year:          2024,
			OccurredAt:    at,
		})
		msg := kafkago.Message{
			Value:   body,
			Headers: []kafkago.Header{{Key: kafka.HeaderEventType, Value: []byte(events.EventPayslipGenerated)}},
		}

		assert.NoError(t, consumer.ActivityHandler(rec)(ctx, msg))
		assert.Equal(t, "Payslip PS-000004 generated for Grace Hopper (May 2024)", rec.entries[0].Description)
		assert.Equal(t, "p-1", rec.entries[0].ReferenceID)
	})

	t.Run("unknown event type is skipped", func(t *testing.T) {
		rec := &fakeRecorder{}
		msg := kafkago.Message{Value: []byte(`{}`)}

		assert.ErrorIs(t, consumer.ActivityHandler(rec)(ctx, msg), consumer.ErrSkip)
		assert.Empty(t, rec.entries)
	})
}
