package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/towet/payroll-processing-sys/internal/events"
	"github.com/towet/payroll-processing-sys/internal/payslip"
	"github.com/towet/payroll-processing-sys/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// PayslipGenerator is the payslip operation the consumer drives.
type PayslipGenerator interface {
	Generate(ctx context.Context, req payslip.GenerateRequest) (payslip.PayslipResponse, error)
}

func ConsumePayslipRequested(
	ctx context.Context,
	reader MessageReader,
	generator PayslipGenerator,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payslip_requested")
	Run(ctx, reader, PayslipRequestedHandler(generator, log), log)
}

func PayslipRequestedHandler(generator PayslipGenerator, log *zap.Logger) HandlerFunc {
	return func(ctx context.Context, msg kafkago.Message) error {
		var event events.PayslipRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return fmt.Errorf("%w: decode payslip request: %v", ErrSkip, err)
		}

		ctx = contextutil.WithRequestID(ctx, event.RequestID)
		resp, err := generator.Generate(ctx, payslip.GenerateRequest{
			EmployeeID: event.EmployeeID,
			Month:      event.Month,
			Year:       event.Year,
		})
		if err != nil {
			if payslip.IsPermanent(err) {
				return fmt.Errorf("%w: %v", ErrSkip, err)
			}
			return err
		}

		log.Info("payslip generated from request",
			zap.String("request_id", event.RequestID),
			zap.String("employee_id", event.EmployeeID),
			zap.String("payslip_number", resp.PayslipNumber),
		)
		return nil
	}
}
