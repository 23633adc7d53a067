package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/config"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/testutil"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/pkg/plugin"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/pkg/plugin/plugintest"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newModule(t *testing.T, settings map[string]any) (*Module, *http.ServeMux) {
	t.Helper()
	v := viper.New()
	for k, val := range settings {
		v.Set(k, val)
	}
	m := New()
	require.NoError(t, m.Init(context.Background(), plugin.Dependencies{
		Config: config.New(v),
		Logger: zap.NewNop(),
		Store:  testutil.NewStore(t),
	}))
	require.NoError(t, m.Start(context.Background()))
	t.Cleanup(func() { _ = m.Stop(context.Background()) })

	mux := http.NewServeMux()
	for _, r := range m.Routes() {
		mux.HandleFunc(r.Method+" /api/v1/payment"+r.Path, r.Handler)
	}
	return m, mux
}

func post(mux http.Handler, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(body)
	req := httptest.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestContract(t *testing.T) {
	plugintest.TestPluginContract(t, func() plugin.Plugin { return New() },
		func(t *testing.T, name string) plugin.Dependencies {
			return plugin.Dependencies{Logger: zap.NewNop().Named(name), Store: testutil.NewStore(t)}
		})
}

func TestRoutes_SimulatorOnlyInDevMode(t *testing.T) {
	paths := func(m *Module) map[string]bool {
		out := map[string]bool{}
		for _, r := range m.Routes() {
			out[r.Method+" "+r.Path] = true
		}
		return out
	}

	prod, _ := newModule(t, map[string]any{"dev_mode": false})
	got := paths(prod)
	assert.True(t, got["POST /webhook"])
	assert.False(t, got["POST /simulator/transactions"], "simulator must not be mounted in production")

	dev, _ := newModule(t, map[string]any{"dev_mode": true})
	got = paths(dev)
	assert.True(t, got["POST /simulator/transactions"])
	assert.True(t, got["POST /simulator/transactions/{id}/process"])

	off, _ := newModule(t, map[string]any{"enabled": false, "dev_mode": true})
	assert.Empty(t, off.Routes())
}

func TestValidateConfig(t *testing.T) {
	m, _ := newModule(t, map[string]any{"success_rate": 1.5})
	assert.Error(t, m.ValidateConfig())

	m, _ = newModule(t, nil)
	assert.NoError(t, m.ValidateConfig())
	assert.InDelta(t, 0.95, m.cfg.SuccessRate, 1e-9)
	assert.Equal(t, 3*time.Second, m.cfg.ProcessDelay)
}

func TestWebhook_SimulatedSignature(t *testing.T) {
	n := Notification{
		TransactionID: "tx-1",
		OrderID:       "ORD-1",
		Status:        "success",
		Amount:        1000,
		Signature:     SimulatedSignature,
		PaymentType:   "bca_va",
	}

	_, prodMux := newModule(t, map[string]any{"dev_mode": false})
	w := post(prodMux, "/api/v1/payment/webhook", n)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	dev, devMux := newModule(t, map[string]any{"dev_mode": true})
	w = post(devMux, "/api/v1/payment/webhook", n)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	list, err := dev.store.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Simulated)
	assert.Equal(t, "ORD-1", list[0].OrderID)
}

func TestWebhook_SignedNotification(t *testing.T) {
	const key = "server-key"
	m, mux := newModule(t, map[string]any{"server_key": key})

	n := Notification{TransactionID: "tx-2", OrderID: "ORD-2", Status: "success", Amount: 5000, PaymentType: "bni_va"}
	n.Signature = "deadbeef"
	w := post(mux, "/api/v1/payment/webhook", n)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	n.Signature = Sign(key, n)
	w = post(mux, "/api/v1/payment/webhook", n)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	list, err := m.store.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].Simulated)
}

func TestWebhook_BadRequests(t *testing.T) {
	_, mux := newModule(t, map[string]any{"dev_mode": true})
	w := post(mux, "/api/v1/payment/webhook", map[string]string{"order_id": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSimulatorEndToEnd(t *testing.T) {
	// The simulator posts to a receiver running in dev mode.
	receiver, receiverMux := newModule(t, map[string]any{"dev_mode": true})
	srv := httptest.NewServer(receiverMux)
	t.Cleanup(srv.Close)

	m, mux := newModule(t, map[string]any{
		"dev_mode":      true,
		"process_delay": "10ms",
		"success_rate":  1.0,
		"webhook_url":   srv.URL + "/api/v1/payment/webhook",
	})

	w := post(mux, "/api/v1/payment/simulator/transactions", CreateRequest{OrderID: "ORD-9", Amount: 125000})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var tx Transaction
	require.NoError(t, json.NewDecoder(w.Body).Decode(&tx))

	w = post(mux, "/api/v1/payment/simulator/transactions/"+tx.ID+"/method", MethodRequest{Bank: "bca"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = post(mux, "/api/v1/payment/simulator/transactions/"+tx.ID+"/process", nil)
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	require.NoError(t, json.NewDecoder(w.Body).Decode(&tx))
	assert.Equal(t, StateProcessing, tx.State)

	w = post(mux, "/api/v1/payment/simulator/transactions/"+tx.ID+"/process", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	require.Eventually(t, func() bool {
		got, _ := m.Simulator().Get(tx.ID)
		return got.State == StateSuccess
	}, 2*time.Second, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		list, _ := receiver.store.List(context.Background(), 10)
		return len(list) == 1 && list[0].OrderID == "ORD-9" && list[0].Amount == 125000
	}, 2*time.Second, 5*time.Millisecond)

	req := httptest.NewRequest("GET", "/api/v1/payment/simulator/transactions/missing", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
