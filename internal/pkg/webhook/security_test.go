package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func signBody(t *testing.T, key, url string, body []byte) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(url + string(body)))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	t.Parallel()

	const key = "test-signature-key"
	const url = "https://api.sparkcreatives.org/api/v1/webhooks/square"
	body := []byte(`{"type":"payment.created","event_id":"ev1"}`)

	sig := signBody(t, key, url, body)
	assert.True(t, VerifySignature(body, sig, key, url))

	// Flipping any single byte of the body must invalidate the signature.
	for i := range body {
		tampered := append([]byte(nil), body...)
		tampered[i] ^= 0x01
		assert.False(t, VerifySignature(tampered, sig, key, url), "byte %d", i)
	}

	assert.False(t, VerifySignature(body, sig, "other-key", url))
	assert.False(t, VerifySignature(body, sig, key, "https://elsewhere.example/hook"))
	assert.False(t, VerifySignature(body, "not base64 !!!", key, url))
	assert.False(t, VerifySignature(body, "", key, url))
}

func TestVerifySignaturePermissiveWhenUnconfigured(t *testing.T) {
	t.Parallel()

	body := []byte(`{}`)
	assert.True(t, VerifySignature(body, "anything", "", "https://example.org"))
	assert.True(t, VerifySignature(body, "anything", "key", ""))
	assert.True(t, VerifySignature(body, "", "", ""))
}

func TestCheckTimestamp(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)
	tolerance := 300 * time.Second

	tests := []struct {
		name   string
		header string
		want   bool
	}{
		{"absent header passes", "", true},
		{"current time", fmt.Sprintf("%d", now.Unix()), true},
		{"at positive tolerance", fmt.Sprintf("%d", now.Unix()-300), true},
		{"at negative tolerance", fmt.Sprintf("%d", now.Unix()+300), true},
		{"just past tolerance", fmt.Sprintf("%d", now.Unix()-301), false},
		{"future beyond tolerance", fmt.Sprintf("%d", now.Unix()+301), false},
		{"non-integer rejected", "yesterday", false},
		{"fractional rejected", "1700000000.5", false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, CheckTimestamp(tc.header, tolerance, now))
		})
	}
}
