package identity

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/coastline-labs/anchor/internal/core/domain"
)

// SignatureHeader carries the webhook payload signature.
const SignatureHeader = "X-Webhook-Signature"

// VerifySignature checks an HMAC-SHA256 webhook signature (hex encoded)
// against the raw payload. A mismatch returns domain.ErrUnauthorized.
func VerifySignature(secret string, payload []byte, signature string) error {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return domain.ErrUnauthorized
	}
	return nil
}

// Sign computes the hex-encoded HMAC-SHA256 signature for a payload.
// Exposed for tests and local tooling.
func Sign(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
