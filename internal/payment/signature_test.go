package payment

import (
	"errors"
	"testing"
)

func TestVerify(t *testing.T) {
	base := Notification{TransactionID: "tx1", OrderID: "23", Status: "success", Amount: 5, PaymentType: "bca_va"}
	signed := base
	signed.Signature = Sign("k", base)
	tampered := signed
	tampered.Amount = 11
	shifted := signed
	shifted.TransactionID, shifted.OrderID = "tx12", "3"
	otherType := signed
	otherType.PaymentType = "bri_va"
	simulated := base
	simulated.Signature = SimulatedSignature

	tests := []struct {
		name          string
		n             Notification
		devMode       bool
		key           string
		wantSimulated bool
		wantErr       error
	}{
		{"simulated in dev", simulated, true, "", true, nil},
		{"simulated in production", simulated, false, "k", true, ErrSimulatedRejected},
		{"signed", signed, false, "k", false, nil},
		{"signed in dev", signed, true, "k", false, nil},
		{"tampered amount", tampered, false, "k", false, ErrBadSignature},
		{"shifted field boundary", shifted, false, "k", false, ErrBadSignature},
		{"changed payment type", otherType, false, "k", false, ErrBadSignature},
		{"wrong key", signed, false, "other", false, ErrBadSignature},
		{"no server key", signed, true, "", false, ErrNoServerKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim, err := Verify(tt.n, tt.devMode, tt.key)
			if sim != tt.wantSimulated {
				t.Errorf("simulated = %v, want %v", sim, tt.wantSimulated)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSign_Deterministic(t *testing.T) {
	n := Notification{TransactionID: "tx", OrderID: "ORD", Status: "success", Amount: 10}
	if Sign("k", n) != Sign("k", n) {
		t.Fatal("Sign is not deterministic")
	}
	if len(Sign("k", n)) != 64 {
		t.Errorf("len = %d, want 64 hex chars", len(Sign("k", n)))
	}
}
