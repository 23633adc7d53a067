package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
)

// Signature errors.
var (
	ErrSimulatedRejected = errors.New("simulated signatures are only accepted in dev mode")
	ErrNoServerKey       = errors.New("signature verification is not configured")
	ErrBadSignature      = errors.New("signature mismatch")
)

// Sign returns the hex HMAC-SHA256 of the notification fields under key.
// Each field is length-prefixed so no two field splits share a MAC.
func Sign(key string, n Notification) string {
	mac := hmac.New(sha256.New, []byte(key))
	for _, f := range []string{
		n.TransactionID,
		n.OrderID,
		n.Status,
		strconv.FormatInt(n.Amount, 10),
		n.PaymentType,
	} {
		mac.Write([]byte(strconv.Itoa(len(f))))
		mac.Write([]byte{':'})
		mac.Write([]byte(f))
	}
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks a received notification. SIMULATED passes only in dev mode;
// anything else must carry a valid HMAC under serverKey.
func Verify(n Notification, devMode bool, serverKey string) (simulated bool, err error) {
	if n.Signature == SimulatedSignature {
		if !devMode {
			return true, ErrSimulatedRejected
		}
		return true, nil
	}
	if serverKey == "" {
		return false, ErrNoServerKey
	}
	if !hmac.Equal([]byte(n.Signature), []byte(Sign(serverKey, n))) {
		return false, ErrBadSignature
	}
	return false, nil
}
