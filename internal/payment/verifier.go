// Package payment verifies Razorpay checkout signatures. This is the sole
// integrity check gating whether a booking is treated as paid.
package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Verifier recomputes checkout signatures with a server-held key secret.
// The secret is injected at construction and immutable afterwards.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a Verifier with the given Razorpay key secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Sign computes the expected hex HMAC-SHA256 digest over
// orderID + "|" + paymentID.
func (v *Verifier) Sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether the provided signature matches the expected digest
// for the order/payment pair. Pure function of its inputs and the secret.
func (v *Verifier) Verify(orderID, paymentID, providedSignature string) bool {
	expected := v.Sign(orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(providedSignature))
}
