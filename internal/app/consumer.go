package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/towet/payroll-processing-sys/internal/config"
	"github.com/towet/payroll-processing-sys/internal/dashboard"
	"github.com/towet/payroll-processing-sys/internal/employee"
	"github.com/towet/payroll-processing-sys/internal/events"
	"github.com/towet/payroll-processing-sys/internal/messaging/kafka"
	"github.com/towet/payroll-processing-sys/internal/messaging/kafka/consumer"
	"github.com/towet/payroll-processing-sys/internal/payslip"
	"github.com/towet/payroll-processing-sys/internal/shared/connection"
	"github.com/towet/payroll-processing-sys/internal/shared/counter"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const consumerGroupPrefix = "payroll-processing"

func newReader(broker, topic, group string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{broker},
		Topic:          topic,
		GroupID:        consumerGroupPrefix + "-" + group,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
}

// RunConsumer runs the payslip-request and activity consumers until SIGINT or
// SIGTERM, then waits for both loops to return.
func RunConsumer(cfg config.Config, logger *zap.Logger) error {
	log := logger.Named("app.consumer")

	if err := cfg.ValidateMessaging(); err != nil {
		return err
	}

	infra, err := Connect(cfg, logger, false)
	if err != nil {
		return err
	}
	defer infra.Close()

	employeeRepo := employee.NewRepository(infra.GormDB)
	payslipService := payslip.NewService(
		infra.SQLDB,
		payslip.NewRepository(infra.GormDB),
		counter.NewRepository(infra.GormDB),
		kafka.NewOutboxRepository(infra.SQLDB),
		employeeRepo,
		payslip.WithArchive(payslip.NewDirArchive(cfg.Payslip.StorageDir)),
		payslip.WithLogger(logger),
	)
	activityRepo := dashboard.NewActivityRepository(infra.GormDB)

	broker := connection.BrokerAddr(cfg.Kafka.Broker)
	payslipReader := newReader(broker, events.PayslipRequestedTopic, "payslip")
	defer payslipReader.Close()
	activityReader := newReader(broker, events.ActivityTopic, "activity")
	defer activityReader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		consumer.ConsumePayslipRequested(ctx, payslipReader, payslipService, logger)
	}()
	go func() {
		defer wg.Done()
		consumer.ConsumeActivity(ctx, activityReader, activityRepo, logger)
	}()
	wg.Wait()

	log.Info("consumer shutting down")
	return nil
}
