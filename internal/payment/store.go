package payment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Muhfaizr21/warungforzaSaas-sub001/pkg/plugin"
)

// Received is a webhook notification accepted by the receiver.
type Received struct {
	ID int64 `json:"id" example:"7"`
	Notification
	Simulated  bool      `json:"simulated" example:"true"`
	ReceivedAt time.Time `json:"received_at"`
}

func migrations() []plugin.Migration {
	return []plugin.Migration{
		{
			Version:     1,
			Description: "create payment_notifications table",
			Up: func(tx *sql.Tx) error {
				_, err := tx.Exec(`CREATE TABLE IF NOT EXISTS payment_notifications (
					id             INTEGER PRIMARY KEY AUTOINCREMENT,
					transaction_id TEXT    NOT NULL,
					order_id       TEXT    NOT NULL,
					status         TEXT    NOT NULL,
					amount         INTEGER NOT NULL,
					payment_type   TEXT    NOT NULL,
					simulated      INTEGER NOT NULL DEFAULT 0,
					received_at    TEXT    NOT NULL
				)`)
				return err
			},
		},
	}
}

// NotificationStore persists received webhook notifications.
type NotificationStore struct {
	db *sql.DB
}

// NewNotificationStore wraps db. Migrations must already have run.
func NewNotificationStore(db *sql.DB) *NotificationStore {
	return &NotificationStore{db: db}
}

// Record stores one notification and returns its row.
func (s *NotificationStore) Record(ctx context.Context, n Notification, simulated bool, at time.Time) (Received, error) {
	at = at.UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO payment_notifications
			(transaction_id, order_id, status, amount, payment_type, simulated, received_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		n.TransactionID, n.OrderID, n.Status, n.Amount, n.PaymentType, simulated, at.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Received{}, fmt.Errorf("record notification: %w", err)
	}
	id, _ := res.LastInsertId()
	return Received{ID: id, Notification: n, Simulated: simulated, ReceivedAt: at}, nil
}

// List returns up to limit notifications, newest first.
func (s *NotificationStore) List(ctx context.Context, limit int) ([]Received, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, transaction_id, order_id, status, amount, payment_type, simulated, received_at
		FROM payment_notifications ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	out := make([]Received, 0)
	for rows.Next() {
		var (
			r     Received
			stamp string
		)
		if err := rows.Scan(&r.ID, &r.TransactionID, &r.OrderID, &r.Status, &r.Amount, &r.PaymentType, &r.Simulated, &stamp); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		if r.ReceivedAt, err = time.Parse(time.RFC3339Nano, stamp); err != nil {
			return nil, fmt.Errorf("parse received_at %q: %w", stamp, err)
		}
		r.Signature = "" // not stored
		out = append(out, r)
	}
	return out, rows.Err()
}
