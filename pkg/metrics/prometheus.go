package metrics

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

type Collector struct {
	registry            *prometheus.Registry
	transactionsApplied prometheus.Counter
	transactionsFailed  prometheus.Counter
	transactionDuration prometheus.Histogram
	accountBalance      *prometheus.GaugeVec
	budgetOverruns      *prometheus.CounterVec
	mu                  sync.RWMutex
	logger              *slog.Logger
}

func NewCollector(logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}

	registry := prometheus.NewRegistry()

	collector := &Collector{
		registry: registry,
		transactionsApplied: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "transactions_applied_total",
			Help: "Total number of applied transactions",
		}),
		transactionsFailed: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "transactions_failed_total",
			Help: "Total number of failed transactions",
		}),
		transactionDuration: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "transaction_processing_duration_seconds",
			Help:    "Time taken to process a transaction",
			Buckets: prometheus.DefBuckets,
		}),
		accountBalance: promauto.With(registry).NewGaugeVec(prometheus.GaugeOpts{
			Name: "account_balance",
			Help: "Current account balance",
		}, []string{"account_id", "holder"}),
		budgetOverruns: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "budget_overruns_total",
			Help: "Budget overrun warnings per category",
		}, []string{"category"}),
		logger: logger,
	}

	return collector
}

func (m *Collector) RecordTransaction(duration time.Duration, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if success {
		m.transactionsApplied.Inc()
	} else {
		m.transactionsFailed.Inc()
	}

	m.transactionDuration.Observe(duration.Seconds())
}

func (m *Collector) UpdateAccountBalance(accountID, holder string, balance decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accountBalance.WithLabelValues(accountID, holder).Set(balance.InexactFloat64())
}

func (m *Collector) RecordBudgetOverrun(category string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.budgetOverruns.WithLabelValues(category).Inc()
}

func (m *Collector) GetHandler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Collector) StartMetricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.GetHandler())

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		m.logger.Info("Starting metrics server", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			m.logger.Error("Metrics server failed", slog.String("error", err.Error()))
		}
	}()

	return server
}

func (m *Collector) Shutdown(ctx context.Context) error {
	m.logger.Info("Metrics collector shutdown complete")
	return nil
}
