package webhook

import (
	"encoding/hex"
	"testing"
)

func TestVerify(t *testing.T) {
	secret := "test-secret-key"
	body := []byte(`{"type":"deployment.success","project":{"name":"api"}}`)

	validSig := NewVerifier(secret).Sign(body)

	// Flip one bit of the valid signature.
	raw, _ := hex.DecodeString(validSig)
	raw[0] ^= 0x01
	flippedSig := hex.EncodeToString(raw)

	tests := []struct {
		name      string
		body      []byte
		signature string
		secret    string
		wantErr   bool
	}{
		{
			name:      "valid signature - plain hex",
			body:      body,
			signature: validSig,
			secret:    secret,
			wantErr:   false,
		},
		{
			name:      "valid signature - sha256= prefix",
			body:      body,
			signature: "sha256=" + validSig,
			secret:    secret,
			wantErr:   false,
		},
		{
			name:      "single bit flipped",
			body:      body,
			signature: flippedSig,
			secret:    secret,
			wantErr:   true,
		},
		{
			name:      "tampered body",
			body:      []byte(`{"type":"deployment.success","project":{"name":"evil"}}`),
			signature: validSig,
			secret:    secret,
			wantErr:   true,
		},
		{
			name:      "wrong secret",
			body:      body,
			signature: validSig,
			secret:    "wrong-secret",
			wantErr:   true,
		},
		{
			name:      "missing header with secret configured",
			body:      body,
			signature: "",
			secret:    secret,
			wantErr:   true,
		},
		{
			name:      "malformed hex",
			body:      body,
			signature: "not-valid-hex",
			secret:    secret,
			wantErr:   true,
		},
		{
			name:      "no secret configured - verification disabled",
			body:      body,
			signature: "",
			secret:    "",
			wantErr:   false,
		},
		{
			name:      "no secret configured - garbage signature still accepted",
			body:      body,
			signature: "whatever",
			secret:    "",
			wantErr:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewVerifier(tt.secret).Verify(tt.body, tt.signature)
			if (err != nil) != tt.wantErr {
				t.Errorf("Verify() error = %v, wantErr %v", err, tt.wantErr)
			}

			// All errors should be generic (no information leakage)
			if err != nil && err != ErrVerificationFailed {
				t.Errorf("error should be ErrVerificationFailed, got: %v", err)
			}
		})
	}
}

func TestEnabled(t *testing.T) {
	if NewVerifier("").Enabled() {
		t.Error("Enabled() = true with empty secret")
	}
	if !NewVerifier("s").Enabled() {
		t.Error("Enabled() = false with secret configured")
	}
}

func TestSignDisabled(t *testing.T) {
	if got := NewVerifier("").Sign([]byte("body")); got != "" {
		t.Errorf("Sign() on disabled verifier = %q, want empty", got)
	}
}

func TestParseSignature(t *testing.T) {
	tests := []struct {
		name      string
		signature string
		want      string // hex representation of expected bytes
		wantErr   bool
	}{
		{
			name:      "sha256 prefix",
			signature: "sha256=3a8f7b2c1d4e5f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0c1d2e3f4a5b6c7d8e9f0a",
			want:      "3a8f7b2c1d4e5f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0c1d2e3f4a5b6c7d8e9f0a",
		},
		{
			name:      "plain hex",
			signature: "3a8f7b2c1d4e5f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0c1d2e3f4a5b6c7d8e9f0a",
			want:      "3a8f7b2c1d4e5f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0c1d2e3f4a5b6c7d8e9f0a",
		},
		{
			name:      "invalid hex",
			signature: "not-valid-hex",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSignature(tt.signature)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseSignature() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && hex.EncodeToString(got) != tt.want {
				t.Errorf("parseSignature() = %x, want %s", got, tt.want)
			}
		})
	}
}
