package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Muhfaizr21/warungforzaSaas-sub001/pkg/plugin"
	"go.uber.org/zap"
)

const maxBodyBytes = 64 << 10

// CreateRequest starts a simulated payment.
type CreateRequest struct {
	OrderID string `json:"order_id" example:"ORD-20260115-0001"`
	Amount  int64  `json:"amount" example:"250000"`
}

// MethodRequest selects the virtual-account bank.
type MethodRequest struct {
	Bank string `json:"bank" example:"bca"`
}

// Routes implements plugin.HTTPProvider. Simulator routes exist only in
// dev mode.
func (m *Module) Routes() []plugin.Route {
	if !m.cfg.Enabled {
		return nil
	}
	routes := []plugin.Route{
		{Method: "POST", Path: "/webhook", Handler: m.handleWebhook},
		{Method: "GET", Path: "/notifications", Handler: m.handleListNotifications},
	}
	if m.simulatorEnabled() {
		routes = append(routes,
			plugin.Route{Method: "GET", Path: "/simulator/banks", Handler: m.handleListBanks},
			plugin.Route{Method: "POST", Path: "/simulator/transactions", Handler: m.handleCreate},
			plugin.Route{Method: "GET", Path: "/simulator/transactions/{id}", Handler: m.handleGet},
			plugin.Route{Method: "POST", Path: "/simulator/transactions/{id}/method", Handler: m.handleSelectMethod},
			plugin.Route{Method: "POST", Path: "/simulator/transactions/{id}/process", Handler: m.handleProcess},
			plugin.Route{Method: "POST", Path: "/simulator/transactions/{id}/reset", Handler: m.handleReset},
		)
	}
	return routes
}

// handleWebhook receives payment notifications.
//
//	@Summary		Payment webhook
//	@Description	Accepts {transaction_id, order_id, status, amount, signature, payment_type}. SIMULATED signatures are accepted only in dev mode.
//	@Tags			payment
//	@Accept			json
//	@Produce		json
//	@Param			request	body		Notification	true	"Notification"
//	@Success		200		{object}	Received
//	@Failure		400		{object}	models.APIProblem
//	@Failure		401		{object}	models.APIProblem
//	@Router			/payment/webhook [post]
func (m *Module) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var n Notification
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&n); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if n.TransactionID == "" || n.OrderID == "" || n.Status == "" {
		writeError(w, http.StatusBadRequest, "transaction_id, order_id and status are required")
		return
	}

	simulated, err := Verify(n, m.cfg.DevMode, m.cfg.ServerKey)
	if err != nil {
		notificationsReceived.WithLabelValues("rejected").Inc()
		m.logger.Warn("rejected payment notification",
			zap.String("order_id", n.OrderID),
			zap.Bool("simulated", simulated),
			zap.Error(err),
		)
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	rec, err := m.store.Record(r.Context(), n, simulated, m.now())
	if err != nil {
		m.logger.Error("failed to record payment notification", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to record notification")
		return
	}
	notificationsReceived.WithLabelValues("accepted").Inc()
	m.logger.Info("payment notification accepted",
		zap.String("transaction_id", n.TransactionID),
		zap.String("order_id", n.OrderID),
		zap.String("status", n.Status),
		zap.Bool("simulated", simulated),
	)
	if m.bus != nil {
		m.bus.PublishAsync(context.WithoutCancel(r.Context()), plugin.Event{
			Topic:     TopicPaymentNotified,
			Source:    "payment",
			Timestamp: rec.ReceivedAt,
			Payload:   rec,
		})
	}
	writeJSON(w, http.StatusOK, rec)
}

// handleListNotifications returns received notifications.
//
//	@Summary		List payment notifications
//	@Tags			payment
//	@Produce		json
//	@Security		BearerAuth
//	@Param			limit	query		int	false	"Max entries"	default(50)
//	@Success		200		{array}		Received
//	@Router			/payment/notifications [get]
func (m *Module) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	list, err := m.store.List(r.Context(), limit)
	if err != nil {
		m.logger.Error("failed to list notifications", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list notifications")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// handleListBanks returns the virtual-account banks.
//
//	@Summary		Simulator banks
//	@Tags			payment
//	@Produce		json
//	@Success		200	{array}	Bank
//	@Router			/payment/simulator/banks [get]
func (m *Module) handleListBanks(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, Banks)
}

// handleCreate starts a pending simulated payment.
//
//	@Summary		Start simulated payment
//	@Tags			payment
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateRequest	true	"Order"
//	@Success		201		{object}	Transaction
//	@Failure		400		{object}	models.APIProblem
//	@Router			/payment/simulator/transactions [post]
func (m *Module) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	tx, err := m.simulator.Create(req.OrderID, req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

// handleGet returns one simulated payment; checkout polls it.
//
//	@Summary		Get simulated payment
//	@Tags			payment
//	@Produce		json
//	@Param			id	path		string	true	"Transaction ID"
//	@Success		200	{object}	Transaction
//	@Failure		404	{object}	models.APIProblem
//	@Router			/payment/simulator/transactions/{id} [get]
func (m *Module) handleGet(w http.ResponseWriter, r *http.Request) {
	tx, err := m.simulator.Get(r.PathValue("id"))
	if err != nil {
		m.writeSimError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

// handleSelectMethod picks a bank and reveals the virtual account.
//
//	@Summary		Select payment method
//	@Tags			payment
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Transaction ID"
//	@Param			request	body		MethodRequest	true	"Bank"
//	@Success		200		{object}	Transaction
//	@Failure		409		{object}	models.APIProblem
//	@Router			/payment/simulator/transactions/{id}/method [post]
func (m *Module) handleSelectMethod(w http.ResponseWriter, r *http.Request) {
	var req MethodRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	tx, err := m.simulator.SelectMethod(r.PathValue("id"), req.Bank)
	if err != nil {
		m.writeSimError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

// handleProcess moves the payment to processing and settles it after the
// configured delay.
//
//	@Summary		Process simulated payment
//	@Tags			payment
//	@Produce		json
//	@Param			id	path		string	true	"Transaction ID"
//	@Success		202	{object}	Transaction
//	@Failure		409	{object}	models.APIProblem
//	@Router			/payment/simulator/transactions/{id}/process [post]
func (m *Module) handleProcess(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	tx, err := m.simulator.Begin(id)
	if err != nil {
		m.writeSimError(w, err)
		return
	}
	m.processAsync(id)
	writeJSON(w, http.StatusAccepted, tx)
}

// handleReset returns the payment to pending.
//
//	@Summary		Reset simulated payment
//	@Tags			payment
//	@Produce		json
//	@Param			id	path		string	true	"Transaction ID"
//	@Success		200	{object}	Transaction
//	@Failure		409	{object}	models.APIProblem
//	@Router			/payment/simulator/transactions/{id}/reset [post]
func (m *Module) handleReset(w http.ResponseWriter, r *http.Request) {
	tx, err := m.simulator.Reset(r.PathValue("id"))
	if err != nil {
		m.writeSimError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (m *Module) writeSimError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrTransactionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidTransition):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrUnknownBank):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		m.logger.Error("simulator error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "simulator error")
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an RFC 7807 problem detail response.
func writeError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"type":   "https://forzashop.id/problems/payment-error",
		"title":  http.StatusText(status),
		"status": status,
		"detail": detail,
	})
}
