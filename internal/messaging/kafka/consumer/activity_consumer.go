package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/towet/payroll-processing-sys/internal/dashboard"
	"github.com/towet/payroll-processing-sys/internal/events"
	"github.com/towet/payroll-processing-sys/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ActivityRecorder stores one dashboard activity entry.
type ActivityRecorder interface {
	Record(ctx context.Context, entry dashboard.ActivityEntry) error
}

func ConsumeActivity(
	ctx context.Context,
	reader MessageReader,
	recorder ActivityRecorder,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.activity")
	Run(ctx, reader, ActivityHandler(recorder), log)
}

func ActivityHandler(recorder ActivityRecorder) HandlerFunc {
	return func(ctx context.Context, msg kafkago.Message) error {
		entry, err := activityFromMessage(msg)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSkip, err)
		}
		return recorder.Record(ctx, entry)
	}
}

func activityFromMessage(msg kafkago.Message) (dashboard.ActivityEntry, error) {
	eventType := kafka.Header(msg, kafka.HeaderEventType)

	switch eventType {
	case events.EventPayrollPeriodCreated:
		var e events.PayrollPeriodCreatedEvent
		if err := json.Unmarshal(msg.Value, &e); err != nil {
			return dashboard.ActivityEntry{}, err
		}
		return dashboard.ActivityEntry{
			Type:        dashboard.ActivityPayroll,
			Description: fmt.Sprintf("Payroll period %s to %s created for %s", e.PeriodStart, e.PeriodEnd, e.EmployeeName),
			ReferenceID: e.PeriodID,
			Actor:       e.CreatedBy,
			OccurredAt:  occurred(e.OccurredAt),
		}, nil

	case events.EventLeaveDecided:
		var e events.LeaveDecidedEvent
		if err := json.Unmarshal(msg.Value, &e); err != nil {
			return dashboard.ActivityEntry{}, err
		}
		return dashboard.ActivityEntry{
			Type:        dashboard.ActivityLeave,
			Description: fmt.Sprintf("%s %s leave request was %s", e.EmployeeName, e.LeaveType, e.Status),
			ReferenceID: e.LeaveID,
			Actor:       e.DecidedBy,
			OccurredAt:  occurred(e.OccurredAt),
		}, nil

	case events.EventPayslipGenerated:
		var e events.PayslipGeneratedEvent
		if err := json.Unmarshal(msg.Value, &e); err != nil {
			return dashboard.ActivityEntry{}, err
		}
		return dashboard.ActivityEntry{
			Type:        dashboard.ActivityPayslip,
			Description: fmt.Sprintf("Payslip %s generated for %s (%s %d)", e.PayslipNumber, e.EmployeeName, e.Month, e.Year),
			ReferenceID: e.PayslipID,
			OccurredAt:  occurred(e.OccurredAt),
		}, nil
	}

	return dashboard.ActivityEntry{}, fmt.Errorf("unknown event type %q", eventType)
}

func occurred(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}
