package payment

import (
	"context"
	"errors"
	"testing"
	"time"
)

func noSleep(context.Context, time.Duration) error { return nil }

func testIntent(phone string) Intent {
	return Intent{
		AmountMinorUnit: 2500,
		PayerPhone:      phone,
		Purpose:         "farmer activation",
	}
}

func TestConfirm_Success(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	sim := NewSimulator(testIntent("0788123456")).
		WithSleep(noSleep).
		WithClock(func() time.Time { return now })

	settled := false
	if err := sim.Confirm(context.Background(), func() { settled = true }); err != nil {
		t.Fatalf("confirm: unexpected error: %v", err)
	}
	if sim.Status() != StatusSuccess {
		t.Fatalf("expected success, got %s", sim.Status())
	}
	if !settled {
		t.Fatal("expected onSuccess callback after settle")
	}

	record := sim.LastRecord()
	if record == nil {
		t.Fatal("expected payment record")
	}
	if record.Reference == "" {
		t.Fatal("expected non-empty reference")
	}
	if record.Phone != "0788123456" || record.Amount != 2500 {
		t.Fatalf("unexpected record: %+v", record)
	}
	if record.Merchant != MerchantNumber {
		t.Fatalf("expected default merchant %s, got %s", MerchantNumber, record.Merchant)
	}
	if !record.Timestamp.Equal(now) {
		t.Fatalf("expected clock timestamp, got %v", record.Timestamp)
	}
}

func TestConfirm_ShortPhoneStaysPending(t *testing.T) {
	sim := NewSimulator(testIntent("078812")).WithSleep(noSleep)

	err := sim.Confirm(context.Background(), nil)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if sim.Status() != StatusPending {
		t.Fatalf("short phone must keep simulator pending, got %s", sim.Status())
	}
	if sim.LastRecord() != nil {
		t.Fatal("no record should exist for a rejected confirm")
	}
}

func TestConfirm_InjectedFailureAndRetry(t *testing.T) {
	sim := NewSimulator(testIntent("0788123456")).
		WithSleep(noSleep).
		WithFailure(func() error { return errors.New("provider unavailable") })

	if err := sim.Confirm(context.Background(), nil); err == nil {
		t.Fatal("expected injected failure to surface")
	}
	if sim.Status() != StatusFailed {
		t.Fatalf("expected failed, got %s", sim.Status())
	}

	if err := sim.Retry(); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if sim.Status() != StatusPending {
		t.Fatalf("retry must return to pending, got %s", sim.Status())
	}

	sim.fail = nil
	if err := sim.Confirm(context.Background(), nil); err != nil {
		t.Fatalf("confirm after retry: %v", err)
	}
	if sim.Status() != StatusSuccess {
		t.Fatalf("expected success after retry, got %s", sim.Status())
	}
}

func TestRetry_OnlyFromFailed(t *testing.T) {
	sim := NewSimulator(testIntent("0788123456"))
	if err := sim.Retry(); err == nil {
		t.Fatal("retry from pending must be rejected")
	}
}

func TestConfirm_DoubleConfirmRejected(t *testing.T) {
	sim := NewSimulator(testIntent("0788123456")).WithSleep(noSleep)
	if err := sim.Confirm(context.Background(), nil); err != nil {
		t.Fatalf("first confirm: %v", err)
	}
	if err := sim.Confirm(context.Background(), nil); err == nil {
		t.Fatal("second confirm must be rejected")
	}
}

func TestConfirm_CancelledContext(t *testing.T) {
	sim := NewSimulator(testIntent("0788123456"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sim.Confirm(ctx, nil)
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if sim.Status() != StatusFailed {
		t.Fatalf("interrupted processing should fail, got %s", sim.Status())
	}
}
