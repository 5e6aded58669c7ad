package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"strings"
	"time"
)

// VerifySignature checks that rawBody was signed by the holder of signatureKey.
// Square computes HMAC-SHA256 over the registered notification URL concatenated
// with the request body and sends it base64-encoded. Comparison is constant
// time; malformed signatures simply fail, they never error.
func VerifySignature(rawBody []byte, signatureHeader, signatureKey, notificationURL string) bool {
	if signatureKey == "" || notificationURL == "" {
		return true
	}

	mac := hmac.New(sha256.New, []byte(signatureKey))
	mac.Write([]byte(notificationURL))
	mac.Write(rawBody)
	expected := mac.Sum(nil)

	claimed, err := base64.StdEncoding.DecodeString(strings.TrimSpace(signatureHeader))
	if err != nil {
		return false
	}
	return hmac.Equal(expected, claimed)
}

// CheckTimestamp accepts a request whose timestamp header is absent or within
// tolerance of now. A header that is present but not an integer epoch is
// rejected, not treated as absent.
func CheckTimestamp(tsHeader string, tolerance time.Duration, now time.Time) bool {
	if tsHeader == "" {
		return true
	}
	ts, err := strconv.ParseInt(strings.TrimSpace(tsHeader), 10, 64)
	if err != nil {
		return false
	}
	diff := now.Unix() - ts
	if diff < 0 {
		diff = -diff
	}
	return diff <= int64(tolerance.Seconds())
}
