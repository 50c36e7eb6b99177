package checkin

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// TokenLength is the length of a derived token: 32 digest bytes in unpadded base64.
const TokenLength = 43

const idempotencyPrefix = "booking:"

// Deriver produces deterministic check-in tokens and links. The same booking id and
// customer email always yield the same token, so QR codes can be regenerated
// without storage.
type Deriver struct {
	secret  string
	baseURL string
}

func NewDeriver(secret, baseURL string) *Deriver {
	return &Deriver{secret: secret, baseURL: baseURL}
}

// Token returns urlsafe-base64(sha256(secret|bookingID|email)) without padding.
func (d *Deriver) Token(bookingID, email string) string {
	sum := sha256.Sum256([]byte(d.secret + "|" + bookingID + "|" + email))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// URL embeds a token into the configured check-in link.
func (d *Deriver) URL(token string) string {
	return d.baseURL + token
}

// IdempotencyKey is the dedup key downstream consumers use for a booking.
func IdempotencyKey(bookingID string) string {
	return idempotencyPrefix + bookingID
}

// VerifySignature compares the secret sent by the webhook caller with the
// configured one. With no configured secret every request passes. Once a secret
// is configured a missing or different value is rejected; the comparison runs in
// constant time. Values must match byte for byte; whitespace is significant.
func VerifySignature(provided, expected string) bool {
	if expected == "" {
		return true
	}
	if provided == "" {
		return false
	}
	return hmac.Equal([]byte(provided), []byte(expected))
}
