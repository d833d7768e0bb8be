// Package payment simulates the mobile-money charge that gates signup. There
// is no gateway behind it: a confirmed payment waits a fixed delay and
// reports success unconditionally. The failed state exists and is
// retryable, but nothing in the production path reaches it; it stays as an
// injection point for a future real integration.
package payment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MerchantNumber is the fixed mobile-money merchant receiving every fee.
const MerchantNumber = "0790362220"

// MinPhoneLength is the shortest accepted payer phone number.
const MinPhoneLength = 10

const (
	DefaultProcessingDelay = 3 * time.Second
	DefaultSettleDelay     = 1500 * time.Millisecond
)

// Status is the simulator's lifecycle state.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusSuccess    Status = "success"
	StatusFailed     Status = "failed"
)

// ValidationError reports a rejected phone number. The simulator stays in
// pending and the message is shown inline.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "payment: " + e.Message
}

// Intent describes one simulated charge.
type Intent struct {
	AmountMinorUnit int
	PayerPhone      string
	Purpose         string
	Merchant        string
}

// Record is the locally-logged trace of a simulated payment. It is the only
// artifact the flow produces: no receipt, no transaction id from a provider,
// no reconciliation.
type Record struct {
	Reference string
	Phone     string
	Amount    int
	Merchant  string
	Purpose   string
	Timestamp time.Time
}

// Simulator walks one Intent through pending → processing → success. The
// only path to failed is an injected failure; retry returns it to pending.
type Simulator struct {
	mu         sync.Mutex
	status     Status
	intent     Intent
	lastRecord *Record

	processingDelay time.Duration
	settleDelay     time.Duration
	sleep           func(ctx context.Context, d time.Duration) error
	now             func() time.Time
	newReference    func() string
	fail            func() error
	logger          *zap.Logger
}

// NewSimulator builds a Simulator in pending state. The intent's merchant
// defaults to MerchantNumber when unset.
func NewSimulator(intent Intent) *Simulator {
	if intent.Merchant == "" {
		intent.Merchant = MerchantNumber
	}
	return &Simulator{
		status:          StatusPending,
		intent:          intent,
		processingDelay: DefaultProcessingDelay,
		settleDelay:     DefaultSettleDelay,
		sleep:           sleepContext,
		now:             time.Now,
		newReference:    uuid.NewString,
		logger:          zap.NewNop(),
	}
}

// WithDelays overrides the processing and settle delays.
func (s *Simulator) WithDelays(processing, settle time.Duration) *Simulator {
	s.processingDelay = processing
	s.settleDelay = settle
	return s
}

// WithSleep replaces the wait function. Tests use this to skip real delays.
func (s *Simulator) WithSleep(fn func(ctx context.Context, d time.Duration) error) *Simulator {
	s.sleep = fn
	return s
}

// WithClock replaces the timestamp source.
func (s *Simulator) WithClock(now func() time.Time) *Simulator {
	s.now = now
	return s
}

// WithLogger sets the logger receiving payment records.
func (s *Simulator) WithLogger(logger *zap.Logger) *Simulator {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithFailure injects a failure hook evaluated mid-processing. This is the
// only way to reach the failed state.
func (s *Simulator) WithFailure(fn func() error) *Simulator {
	s.fail = fn
	return s
}

// Status returns the current lifecycle state.
func (s *Simulator) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// LastRecord returns the record of the most recent completed charge, or nil.
func (s *Simulator) LastRecord() *Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRecord
}

// Confirm runs the simulated charge: validates the phone number, moves to
// processing, waits the fixed delay, logs the payment record, moves to
// success and, after the settle delay, invokes onSuccess. With a too-short
// phone number the simulator never leaves pending.
func (s *Simulator) Confirm(ctx context.Context, onSuccess func()) error {
	if len(s.intent.PayerPhone) < MinPhoneLength {
		return &ValidationError{Message: "please enter a valid phone number"}
	}

	if err := s.transition(StatusPending, StatusProcessing); err != nil {
		return err
	}

	if err := s.sleep(ctx, s.processingDelay); err != nil {
		s.setStatus(StatusFailed)
		return fmt.Errorf("payment: processing interrupted: %w", err)
	}

	if s.fail != nil {
		if err := s.fail(); err != nil {
			s.setStatus(StatusFailed)
			s.logger.Warn("payment failed",
				zap.String("phone", s.intent.PayerPhone),
				zap.Error(err))
			return fmt.Errorf("payment: %w", err)
		}
	}

	record := Record{
		Reference: s.newReference(),
		Phone:     s.intent.PayerPhone,
		Amount:    s.intent.AmountMinorUnit,
		Merchant:  s.intent.Merchant,
		Purpose:   s.intent.Purpose,
		Timestamp: s.now(),
	}
	s.mu.Lock()
	s.lastRecord = &record
	s.status = StatusSuccess
	s.mu.Unlock()

	s.logger.Info("payment initiated",
		zap.String("reference", record.Reference),
		zap.String("phone", record.Phone),
		zap.Int("amount", record.Amount),
		zap.String("merchant", record.Merchant),
		zap.String("purpose", record.Purpose),
		zap.Time("timestamp", record.Timestamp))

	if err := s.sleep(ctx, s.settleDelay); err != nil {
		return fmt.Errorf("payment: settle interrupted: %w", err)
	}
	if onSuccess != nil {
		onSuccess()
	}
	return nil
}

// Retry returns a failed simulator to pending so Confirm can run again.
func (s *Simulator) Retry() error {
	return s.transition(StatusFailed, StatusPending)
}

func (s *Simulator) transition(from, to Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != from {
		return fmt.Errorf("payment: invalid transition %s -> %s", s.status, to)
	}
	s.status = to
	return nil
}

func (s *Simulator) setStatus(status Status) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
