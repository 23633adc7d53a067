// Package payment hosts the development payment simulator and the payment
// webhook receiver. The simulator and its SIMULATED signature are only
// available when the server runs in dev mode.
package payment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/webhook"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/pkg/plugin"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/pkg/roles"
	"go.uber.org/zap"
)

// TopicPaymentNotified is published for every accepted webhook notification.
const TopicPaymentNotified = "payment.notified"

// Compile-time interface guards.
var (
	_ plugin.Plugin       = (*Module)(nil)
	_ plugin.HTTPProvider = (*Module)(nil)
	_ plugin.Validator    = (*Module)(nil)
)

// Module implements the payment plugin.
type Module struct {
	logger    *zap.Logger
	cfg       Config
	bus       plugin.EventBus
	store     *NotificationStore
	simulator *Simulator
	now       func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new payment plugin instance.
func New() *Module {
	return &Module{now: time.Now}
}

func (m *Module) Info() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:        "payment",
		Version:     "0.1.0",
		Description: "Payment webhook receiver and development payment simulator",
		Roles:       []string{roles.RolePayment},
		APIVersion:  plugin.APIVersionCurrent,
	}
}

func (m *Module) Init(ctx context.Context, deps plugin.Dependencies) error {
	if deps.Store == nil {
		return errors.New("payment: store is required")
	}
	m.logger = deps.Logger
	m.bus = deps.Bus

	m.cfg = DefaultConfig()
	if deps.Config != nil {
		if deps.Config.IsSet("enabled") {
			m.cfg.Enabled = deps.Config.GetBool("enabled")
		}
		m.cfg.DevMode = deps.Config.GetBool("dev_mode")
		if deps.Config.IsSet("process_delay") {
			m.cfg.ProcessDelay = deps.Config.GetDuration("process_delay")
		}
		if deps.Config.IsSet("success_rate") {
			m.cfg.SuccessRate = deps.Config.GetFloat64("success_rate")
		}
		m.cfg.WebhookURL = deps.Config.GetString("webhook_url")
		if d := deps.Config.GetDuration("webhook_timeout"); d > 0 {
			m.cfg.WebhookTimeout = d
		}
		m.cfg.ServerKey = deps.Config.GetString("server_key")
	}

	if err := deps.Store.Migrate(ctx, "payment", migrations()); err != nil {
		return err
	}
	m.store = NewNotificationStore(deps.Store.DB())

	var notify Notifier
	if m.cfg.WebhookURL != "" {
		notify = webhookNotifier{client: webhook.New(webhook.Config{
			URL:     m.cfg.WebhookURL,
			Timeout: m.cfg.WebhookTimeout,
		}, m.logger.Named("webhook"))}
	} else if m.cfg.DevMode {
		m.logger.Warn("webhook_url not configured; simulated payments will not notify")
	}
	m.simulator = NewSimulator(SimulatorConfig{
		ProcessDelay: m.cfg.ProcessDelay,
		SuccessRate:  m.cfg.SuccessRate,
	}, notify, m.logger.Named("simulator"))

	m.logger.Info("payment module initialized",
		zap.Bool("enabled", m.cfg.Enabled),
		zap.Bool("simulator", m.simulatorEnabled()),
		zap.Duration("process_delay", m.cfg.ProcessDelay),
		zap.Float64("success_rate", m.cfg.SuccessRate),
	)
	return nil
}

// ValidateConfig implements plugin.Validator.
func (m *Module) ValidateConfig() error {
	if m.cfg.SuccessRate < 0 || m.cfg.SuccessRate > 1 {
		return fmt.Errorf("payment: success_rate %v outside [0, 1]", m.cfg.SuccessRate)
	}
	if m.cfg.ProcessDelay < 0 {
		return errors.New("payment: process_delay must not be negative")
	}
	return nil
}

func (m *Module) Start(_ context.Context) error {
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.logger.Info("payment module started")
	return nil
}

func (m *Module) Stop(_ context.Context) error {
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
	if m.logger != nil {
		m.logger.Info("payment module stopped")
	}
	return nil
}

// Simulator returns the in-memory simulator.
func (m *Module) Simulator() *Simulator {
	return m.simulator
}

func (m *Module) simulatorEnabled() bool {
	return m.cfg.Enabled && m.cfg.DevMode
}

// processAsync finishes a payment in the background, bounded by the
// module lifetime.
func (m *Module) processAsync(id string) {
	ctx := m.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		if _, err := m.simulator.Finish(ctx, id); err != nil && !errors.Is(err, context.Canceled) {
			m.logger.Warn("simulated payment did not finish", zap.String("transaction_id", id), zap.Error(err))
		}
	}()
}

// webhookNotifier adapts the webhook client to Notifier.
type webhookNotifier struct {
	client *webhook.Client
}

func (n webhookNotifier) Notify(ctx context.Context, note Notification) error {
	return n.client.Send(ctx, "payment.simulated", note)
}
