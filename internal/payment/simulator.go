package payment

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// State is a simulated payment's position in checkout.
type State string

// Simulated payment states. failed is reachable only from processing and
// only Reset returns to pending.
const (
	StatePending    State = "pending"
	StateShowingVA  State = "showing_va"
	StateProcessing State = "processing"
	StateSuccess    State = "success"
	StateFailed     State = "failed"
)

// SimulatedSignature marks webhook calls made by the simulator.
const SimulatedSignature = "SIMULATED"

// Simulator errors.
var (
	ErrInvalidTransition   = errors.New("invalid payment state transition")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrUnknownBank         = errors.New("unknown bank")
	ErrInvalidAmount       = errors.New("amount must be positive")
)

// Bank is a virtual-account issuer.
type Bank struct {
	Code   string `json:"code" example:"bca"`
	Name   string `json:"name" example:"BCA"`
	Prefix string `json:"prefix" example:"39012"`
}

// Banks lists the virtual-account methods the simulator offers.
var Banks = []Bank{
	{Code: "bca", Name: "BCA", Prefix: "39012"},
	{Code: "bni", Name: "BNI", Prefix: "8808"},
	{Code: "bri", Name: "BRI", Prefix: "26215"},
	{Code: "mandiri", Name: "Mandiri", Prefix: "70012"},
	{Code: "permata", Name: "Permata", Prefix: "8528"},
}

const vaLength = 16

func findBank(code string) (Bank, bool) {
	i := slices.IndexFunc(Banks, func(b Bank) bool { return b.Code == strings.ToLower(code) })
	if i < 0 {
		return Bank{}, false
	}
	return Banks[i], true
}

// Transaction is one simulated checkout payment.
type Transaction struct {
	ID        string    `json:"transaction_id" example:"9b0c3f6e-2a1d-4c55-8f0e-1f2a3b4c5d6e"`
	OrderID   string    `json:"order_id" example:"ORD-20260115-0001"`
	Amount    int64     `json:"amount" example:"250000"`
	Bank      string    `json:"bank,omitempty" example:"bca"`
	VANumber  string    `json:"va_number,omitempty" example:"3901208123456789"`
	State     State     `json:"state" example:"showing_va"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PaymentType is the payment_type reported to the webhook.
func (t Transaction) PaymentType() string {
	if t.Bank == "" {
		return "bank_transfer"
	}
	return t.Bank + "_va"
}

// Notification is the webhook body.
type Notification struct {
	TransactionID string `json:"transaction_id" example:"9b0c3f6e-2a1d-4c55-8f0e-1f2a3b4c5d6e"`
	OrderID       string `json:"order_id" example:"ORD-20260115-0001"`
	Status        string `json:"status" example:"success"`
	Amount        int64  `json:"amount" example:"250000"`
	Signature     string `json:"signature" example:"SIMULATED"`
	PaymentType   string `json:"payment_type" example:"bca_va"`
}

// Notifier delivers a successful payment to the webhook.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// SimulatorConfig tunes the simulator.
type SimulatorConfig struct {
	ProcessDelay time.Duration
	SuccessRate  float64
}

// Simulator holds simulated transactions in memory.
type Simulator struct {
	mu     sync.Mutex
	txs    map[string]*Transaction
	cfg    SimulatorConfig
	notify Notifier
	logger *zap.Logger

	now    func() time.Time
	random func() float64
	digit  func() int
	sleep  func(ctx context.Context, d time.Duration) error
}

// NewSimulator creates a simulator. notify may be nil.
func NewSimulator(cfg SimulatorConfig, notify Notifier, logger *zap.Logger) *Simulator {
	return &Simulator{
		txs:    make(map[string]*Transaction),
		cfg:    cfg,
		notify: notify,
		logger: logger,
		now:    time.Now,
		random: rand.Float64,
		digit:  func() int { return rand.IntN(10) },
		sleep:  sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Create starts a pending payment for an order.
func (s *Simulator) Create(orderID string, amount int64) (Transaction, error) {
	if strings.TrimSpace(orderID) == "" {
		return Transaction{}, errors.New("order_id is required")
	}
	if amount <= 0 {
		return Transaction{}, ErrInvalidAmount
	}
	now := s.now().UTC()
	tx := &Transaction{
		ID:        uuid.New().String(),
		OrderID:   orderID,
		Amount:    amount,
		State:     StatePending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.mu.Lock()
	s.txs[tx.ID] = tx
	s.mu.Unlock()
	return *tx, nil
}

// Get returns a copy of the transaction.
func (s *Simulator) Get(id string) (Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.txs[id]
	if !ok {
		return Transaction{}, ErrTransactionNotFound
	}
	return *tx, nil
}

// SelectMethod picks the bank and shows a generated virtual account.
func (s *Simulator) SelectMethod(id, bank string) (Transaction, error) {
	b, ok := findBank(bank)
	if !ok {
		return Transaction{}, fmt.Errorf("%w: %q", ErrUnknownBank, bank)
	}
	return s.transition(id, StatePending, StateShowingVA, func(tx *Transaction) {
		tx.Bank = b.Code
		tx.VANumber = s.virtualAccount(b)
	})
}

// virtualAccount builds a bank prefix followed by random digits.
func (s *Simulator) virtualAccount(b Bank) string {
	var sb strings.Builder
	sb.WriteString(b.Prefix)
	for sb.Len() < vaLength {
		sb.WriteByte(byte('0' + s.digit()))
	}
	return sb.String()
}

// Begin moves a shown virtual account into processing. Finish completes it.
func (s *Simulator) Begin(id string) (Transaction, error) {
	return s.transition(id, StateShowingVA, StateProcessing, nil)
}

// Finish waits the processing delay, draws the outcome and, on success,
// notifies the webhook. A cancelled ctx leaves the payment processing.
func (s *Simulator) Finish(ctx context.Context, id string) (Transaction, error) {
	if err := s.sleep(ctx, s.cfg.ProcessDelay); err != nil {
		return Transaction{}, err
	}

	success := s.random() < s.cfg.SuccessRate
	to := StateFailed
	if success {
		to = StateSuccess
	}
	tx, err := s.transition(id, StateProcessing, to, func(tx *Transaction) {
		if !success {
			tx.Error = "payment declined by simulated bank"
		}
	})
	if err != nil {
		return Transaction{}, err
	}
	simulations.WithLabelValues(string(to)).Inc()
	s.logger.Info("simulated payment finished",
		zap.String("transaction_id", tx.ID),
		zap.String("order_id", tx.OrderID),
		zap.String("state", string(tx.State)),
	)

	if success && s.notify != nil {
		n := Notification{
			TransactionID: tx.ID,
			OrderID:       tx.OrderID,
			Status:        string(StateSuccess),
			Amount:        tx.Amount,
			Signature:     SimulatedSignature,
			PaymentType:   tx.PaymentType(),
		}
		if err := s.notify.Notify(ctx, n); err != nil {
			// The payment stands; only the notification is lost.
			s.logger.Warn("simulated webhook failed", zap.String("transaction_id", tx.ID), zap.Error(err))
		}
	}
	return tx, nil
}

// Process runs Begin and Finish back to back.
func (s *Simulator) Process(ctx context.Context, id string) (Transaction, error) {
	if _, err := s.Begin(id); err != nil {
		return Transaction{}, err
	}
	return s.Finish(ctx, id)
}

// Reset returns a settled or shown payment to pending. A payment that is
// still processing cannot be reset.
func (s *Simulator) Reset(id string) (Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.txs[id]
	if !ok {
		return Transaction{}, ErrTransactionNotFound
	}
	if tx.State == StateProcessing {
		return Transaction{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, tx.State, StatePending)
	}
	tx.State = StatePending
	tx.Bank = ""
	tx.VANumber = ""
	tx.Error = ""
	tx.UpdatedAt = s.now().UTC()
	return *tx, nil
}

func (s *Simulator) transition(id string, from, to State, mutate func(*Transaction)) (Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.txs[id]
	if !ok {
		return Transaction{}, ErrTransactionNotFound
	}
	if tx.State != from {
		return Transaction{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, tx.State, to)
	}
	tx.State = to
	if mutate != nil {
		mutate(tx)
	}
	tx.UpdatedAt = s.now().UTC()
	return *tx, nil
}
