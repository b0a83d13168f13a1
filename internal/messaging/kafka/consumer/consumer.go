package consumer

import (
	"context"
	"errors"
	"time"

	"github.com/towet/payroll-processing-sys/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ErrSkip marks a message that can never be handled, such as an undecodable
// payload. It is committed and dropped instead of being retried.
var ErrSkip = errors.New("skip message")

// MessageReader is satisfied by *kafkago.Reader.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type HandlerFunc func(ctx context.Context, msg kafkago.Message) error

// MaxAttempts bounds how many times a message is handled before it is dropped.
const MaxAttempts = 3

// RetryBackoff is the wait before the second attempt. It doubles on each retry.
var RetryBackoff = 500 * time.Millisecond

// Run fetches until ctx is cancelled. A failing message is retried in place up to
// MaxAttempts times, since the reader never rewinds and committing a later offset
// would skip it anyway. After the last attempt, or on ErrSkip, it is committed and
// dropped. A message is left uncommitted only when ctx ends mid-retry.
func Run(ctx context.Context, reader MessageReader, handle HandlerFunc, log *zap.Logger) {
	log.Info("consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("consumer stopped")
				return
			}
			log.Error("fetch message failed", zap.Error(err))
			continue
		}

		msgLog := log.With(
			zap.String("topic", msg.Topic),
			zap.Int64("offset", msg.Offset),
			zap.String("event_type", kafka.Header(msg, kafka.HeaderEventType)),
			zap.String("request_id", kafka.Header(msg, kafka.HeaderRequestID)),
		)

		if err := handleWithRetry(ctx, msg, handle, msgLog); err != nil {
			if ctx.Err() != nil {
				log.Info("consumer stopped")
				return
			}
			if errors.Is(err, ErrSkip) {
				msgLog.Warn("message skipped", zap.Error(err))
			} else {
				msgLog.Error("message dropped after retries", zap.Int("attempts", MaxAttempts), zap.Error(err))
			}
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			msgLog.Error("commit message failed", zap.Error(err))
		}
	}
}

func handleWithRetry(ctx context.Context, msg kafkago.Message, handle HandlerFunc, log *zap.Logger) error {
	wait := RetryBackoff
	var err error
	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		err = handle(ctx, msg)
		if err == nil || errors.Is(err, ErrSkip) || attempt == MaxAttempts {
			return err
		}
		log.Warn("handle message failed, retrying", zap.Int("attempt", attempt), zap.Error(err))

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		wait *= 2
	}
	return err
}
