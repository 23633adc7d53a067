package studio

import (
	"context"
	"testing"

	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/settings"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/testutil"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/pkg/plugin"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/pkg/plugin/plugintest"
	"go.uber.org/zap"
)

// stubResolver serves a fixed set of plugins by role.
type stubResolver map[string][]plugin.Plugin

func (r stubResolver) Resolve(string) (plugin.Plugin, bool) { return nil, false }

func (r stubResolver) ResolveByRole(role string) []plugin.Plugin { return r[role] }

func settingsDeps(t *testing.T, name string) plugin.Dependencies {
	t.Helper()
	logger := zap.NewNop()
	sm := settings.New()
	if err := sm.Init(context.Background(), plugin.Dependencies{Logger: logger, Store: testutil.NewStore(t)}); err != nil {
		t.Fatalf("settings Init: %v", err)
	}
	return plugin.Dependencies{
		Logger:  logger.Named(name),
		Plugins: stubResolver{settings.RoleSettingsStore: {sm}},
	}
}

func TestContract(t *testing.T) {
	plugintest.TestPluginContract(t, func() plugin.Plugin { return New() }, settingsDeps)
}

func TestInit_RequiresSettingsStore(t *testing.T) {
	err := New().Init(context.Background(), plugin.Dependencies{
		Logger:  zap.NewNop(),
		Plugins: stubResolver{},
	})
	if err == nil {
		t.Fatal("Init without a settings store should fail")
	}

	err = New().Init(context.Background(), plugin.Dependencies{Logger: zap.NewNop()})
	if err == nil {
		t.Fatal("Init without a resolver should fail")
	}
}

func TestValidateConfig(t *testing.T) {
	m := New()
	if err := m.Init(context.Background(), settingsDeps(t, "studio")); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := m.ValidateConfig(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}

	m.cfg.ReapSchedule = "every now and then"
	if err := m.ValidateConfig(); err == nil {
		t.Error("bad reap schedule accepted")
	}
}

func TestModule_SessionsAgainstSettingsModule(t *testing.T) {
	ctx := context.Background()
	deps := settingsDeps(t, "studio")
	m := New()
	if err := m.Init(ctx, deps); err != nil {
		t.Fatalf("Init: %v", err)
	}
	m.manager.afterFunc = neverFire
	t.Cleanup(func() { _ = m.Stop(ctx) })

	s, err := m.Manager().Create(ctx, "admin")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Editor().Change("theme_accent_color", "#111111"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Editor().Save(ctx); err != nil {
		t.Fatalf("Save: %v", err)
	}

	backend := deps.Plugins.ResolveByRole(settings.RoleSettingsStore)[0].(*settings.Module)
	list, err := backend.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].Value != "#111111" {
		t.Errorf("persisted = %+v, want the accent only", list)
	}
}
