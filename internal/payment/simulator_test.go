package payment

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []Notification
	err  error
}

func (r *recordingNotifier) Notify(_ context.Context, n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return r.err
}

func (r *recordingNotifier) Sent() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.sent...)
}

// newTestSimulator returns a simulator with no delay and a fixed draw.
func newTestSimulator(draw float64, notify Notifier) *Simulator {
	s := NewSimulator(SimulatorConfig{SuccessRate: 0.95}, notify, zap.NewNop())
	s.random = func() float64 { return draw }
	s.digit = func() int { return 7 }
	s.sleep = func(ctx context.Context, _ time.Duration) error { return ctx.Err() }
	return s
}

func TestSimulator_HappyPath(t *testing.T) {
	notify := &recordingNotifier{}
	s := newTestSimulator(0.10, notify)

	tx, err := s.Create("ORD-1", 250000)
	require.NoError(t, err)
	assert.Equal(t, StatePending, tx.State)

	tx, err = s.SelectMethod(tx.ID, "BCA")
	require.NoError(t, err)
	assert.Equal(t, StateShowingVA, tx.State)
	assert.Equal(t, "bca", tx.Bank)
	assert.Equal(t, "3901277777777777", tx.VANumber)
	assert.Len(t, tx.VANumber, vaLength)

	tx, err = s.Process(context.Background(), tx.ID)
	require.NoError(t, err)
	assert.Equal(t, StateSuccess, tx.State)

	sent := notify.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, Notification{
		TransactionID: tx.ID,
		OrderID:       "ORD-1",
		Status:        "success",
		Amount:        250000,
		Signature:     "SIMULATED",
		PaymentType:   "bca_va",
	}, sent[0])
}

func TestSimulator_FailedOutcome(t *testing.T) {
	notify := &recordingNotifier{}
	s := newTestSimulator(0.99, notify)

	tx, _ := s.Create("ORD-2", 1000)
	_, _ = s.SelectMethod(tx.ID, "bni")
	tx, err := s.Process(context.Background(), tx.ID)
	require.NoError(t, err)
	assert.Equal(t, StateFailed, tx.State)
	assert.NotEmpty(t, tx.Error)
	assert.Empty(t, notify.Sent(), "failed payments do not notify")
}

func TestSimulator_SuccessRateBoundary(t *testing.T) {
	// A draw equal to the rate fails; strictly below succeeds.
	s := newTestSimulator(0.95, nil)
	tx, _ := s.Create("ORD-3", 1000)
	_, _ = s.SelectMethod(tx.ID, "bri")
	tx, err := s.Process(context.Background(), tx.ID)
	require.NoError(t, err)
	assert.Equal(t, StateFailed, tx.State)
}

func TestSimulator_InvalidTransitions(t *testing.T) {
	s := newTestSimulator(0.1, nil)
	tx, _ := s.Create("ORD-4", 1000)

	_, err := s.Begin(tx.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition, "pending cannot skip to processing")

	_, err = s.Finish(context.Background(), tx.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition, "only processing can settle")

	_, _ = s.SelectMethod(tx.ID, "mandiri")
	_, err = s.SelectMethod(tx.ID, "bca")
	assert.ErrorIs(t, err, ErrInvalidTransition, "method is chosen once")

	_, _ = s.Begin(tx.ID)
	_, err = s.Reset(tx.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition, "processing cannot be reset")

	_, _ = s.Finish(context.Background(), tx.ID)
	_, err = s.Begin(tx.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition, "success is terminal")
}

func TestSimulator_ResetReturnsToPending(t *testing.T) {
	s := newTestSimulator(0.99, nil)
	tx, _ := s.Create("ORD-5", 1000)
	_, _ = s.SelectMethod(tx.ID, "permata")
	_, _ = s.Process(context.Background(), tx.ID)

	tx, err := s.Reset(tx.ID)
	require.NoError(t, err)
	assert.Equal(t, StatePending, tx.State)
	assert.Empty(t, tx.VANumber)
	assert.Empty(t, tx.Error)

	// And the flow can run again.
	_, err = s.SelectMethod(tx.ID, "bca")
	assert.NoError(t, err)
}

func TestSimulator_Validation(t *testing.T) {
	s := newTestSimulator(0.1, nil)

	_, err := s.Create("", 1000)
	assert.Error(t, err)
	_, err = s.Create("ORD-6", 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	tx, _ := s.Create("ORD-6", 1000)
	_, err = s.SelectMethod(tx.ID, "dana")
	assert.ErrorIs(t, err, ErrUnknownBank)

	_, err = s.Get("missing")
	assert.ErrorIs(t, err, ErrTransactionNotFound)
	_, err = s.Reset("missing")
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestSimulator_CancelledWhileProcessing(t *testing.T) {
	s := newTestSimulator(0.1, nil)
	tx, _ := s.Create("ORD-7", 1000)
	_, _ = s.SelectMethod(tx.ID, "bca")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Process(ctx, tx.ID)
	assert.True(t, errors.Is(err, context.Canceled))

	got, _ := s.Get(tx.ID)
	assert.Equal(t, StateProcessing, got.State)
}

func TestSimulator_NotifyFailureKeepsSuccess(t *testing.T) {
	notify := &recordingNotifier{err: errors.New("connection refused")}
	s := newTestSimulator(0.1, notify)
	tx, _ := s.Create("ORD-8", 1000)
	_, _ = s.SelectMethod(tx.ID, "bca")

	tx, err := s.Process(context.Background(), tx.ID)
	require.NoError(t, err)
	assert.Equal(t, StateSuccess, tx.State)
	assert.Len(t, notify.Sent(), 1)
}

func TestSleepContext(t *testing.T) {
	start := time.Now()
	require.NoError(t, sleepContext(context.Background(), 20*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
}

func TestVirtualAccountPrefixes(t *testing.T) {
	s := NewSimulator(SimulatorConfig{}, nil, zap.NewNop())
	for _, b := range Banks {
		va := s.virtualAccount(b)
		assert.True(t, strings.HasPrefix(va, b.Prefix), "%s: %s", b.Code, va)
		assert.Len(t, va, vaLength)
	}
}
