package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Alert is a budget-overrun notification on its way to the sinks.
type Alert struct {
	Category  string
	Spent     decimal.Decimal
	Limit     decimal.Decimal
	CreatedAt time.Time
}

// Sink delivers a single alert to some output.
type Sink interface {
	Deliver(alert Alert) error
}

// AlertService fans budget warnings out to its sinks through a worker pool.
// Enqueueing never blocks: if the queue is full the alert is dropped with a
// log line, since a warning must never fail the bookkeeping call it came from.
type AlertService struct {
	sinks        []Sink
	messageQueue chan Alert
	workers      int
	shutdownChan chan struct{}
	wg           sync.WaitGroup
	logger       *slog.Logger
}

func NewAlertService(workers, queueSize int, logger *slog.Logger, sinks ...Sink) *AlertService {
	if logger == nil {
		logger = slog.Default()
	}

	s := &AlertService{
		sinks:        sinks,
		messageQueue: make(chan Alert, queueSize),
		workers:      workers,
		shutdownChan: make(chan struct{}),
		logger:       logger,
	}

	s.startWorkers()

	return s
}

// BudgetExceeded implements budget.AlertSink.
func (s *AlertService) BudgetExceeded(category string, spent, limit decimal.Decimal) {
	alert := Alert{
		Category:  category,
		Spent:     spent,
		Limit:     limit,
		CreatedAt: time.Now(),
	}

	select {
	case s.messageQueue <- alert:
	default:
		s.logger.Warn("Alert queue full, dropping alert",
			slog.String("category", category))
	}
}

func (s *AlertService) startWorkers() {
	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}
}

func (s *AlertService) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case alert := <-s.messageQueue:
			s.deliver(alert, id)
		case <-s.shutdownChan:
			return
		}
	}
}

func (s *AlertService) deliver(alert Alert, workerID int) {
	for _, sink := range s.sinks {
		if err := sink.Deliver(alert); err != nil {
			s.logger.Error("Failed to deliver alert",
				slog.String("category", alert.Category),
				slog.String("error", err.Error()),
				slog.Int("worker_id", workerID))
		}
	}
}

// Shutdown drains the queue and stops the workers.
func (s *AlertService) Shutdown(ctx context.Context) error {
	for {
		select {
		case alert := <-s.messageQueue:
			s.deliver(alert, -1)
			continue
		default:
		}
		break
	}

	close(s.shutdownChan)

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Alert service shutdown complete")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ConsoleSink writes the overrun warning line to a writer, typically stdout.
type ConsoleSink struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{w: w}
}

func (c *ConsoleSink) Deliver(alert Alert) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := fmt.Fprintf(c.w, "⚠️ Warning: %s budget exceeded!\n", alert.Category)
	return err
}

// SlogSink mirrors every alert into the structured log.
type SlogSink struct {
	logger *slog.Logger
}

func NewSlogSink(logger *slog.Logger) *SlogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogSink{logger: logger}
}

func (s *SlogSink) Deliver(alert Alert) error {
	s.logger.Warn("Budget exceeded",
		slog.String("category", alert.Category),
		slog.String("spent", alert.Spent.String()),
		slog.String("limit", alert.Limit.String()))
	return nil
}
