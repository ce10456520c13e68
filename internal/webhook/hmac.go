package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"
)

// ErrVerificationFailed is returned for every verification failure.
// The error is deliberately generic to prevent information leakage.
var ErrVerificationFailed = errors.New("webhook verification failed")

// Verifier validates webhook signatures with HMAC-SHA256 over the raw
// request body, using constant-time comparison (crypto/subtle) to prevent
// timing attacks.
//
// Policy is explicit: with no secret configured, verification is disabled
// and Verify accepts everything. With a secret configured, a signature is
// REQUIRED — an absent, malformed, or mismatched signature fails closed.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a Verifier. An empty secret disables verification.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Enabled reports whether a secret is configured and signatures are enforced.
func (v *Verifier) Enabled() bool {
	return len(v.secret) > 0
}

// Verify checks the claimed signature header value against the raw body.
//
// Supported signature formats:
//   - "sha256=<hex>" (GitHub style)
//   - "<hex>" (plain hex)
//
// Returns nil if verification is disabled or the signature is valid,
// ErrVerificationFailed otherwise.
func (v *Verifier) Verify(body []byte, signature string) error {
	if !v.Enabled() {
		return nil
	}

	if signature == "" {
		return ErrVerificationFailed
	}

	actualMAC, err := parseSignature(signature)
	if err != nil {
		// Malformed encoding fails closed, same generic error.
		return ErrVerificationFailed
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write(body)
	expectedMAC := mac.Sum(nil)

	if subtle.ConstantTimeCompare(expectedMAC, actualMAC) != 1 {
		return ErrVerificationFailed
	}

	return nil
}

// Sign computes the hex-encoded HMAC-SHA256 signature for a body.
// Useful for clients and tests; a disabled Verifier returns "".
func (v *Verifier) Sign(body []byte) string {
	if !v.Enabled() {
		return ""
	}
	mac := hmac.New(sha256.New, v.secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// parseSignature extracts and decodes the HMAC signature from its header form.
func parseSignature(signature string) ([]byte, error) {
	if strings.HasPrefix(signature, "sha256=") {
		hexSig := strings.TrimPrefix(signature, "sha256=")
		return hex.DecodeString(hexSig)
	}
	return hex.DecodeString(signature)
}
