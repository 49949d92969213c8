package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// minKeyLength guards against an empty or trivially short gateway key.
const minKeyLength = 16

// SignPayload computes a hex-encoded HMAC-SHA256 over payload. The payment
// gateway signs its webhook callbacks with the shared signature key; the same
// function produces the signature we hand out at session initiation.
func SignPayload(key []byte, payload string) (string, error) {
	if len(key) < minKeyLength {
		return "", errors.New("signature key must be at least 16 bytes")
	}
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// VerifyPayload reports whether signature is a valid HMAC-SHA256 of payload
// under key. Comparison is constant-time.
func VerifyPayload(key []byte, payload, signature string) bool {
	expected, err := SignPayload(key, payload)
	if err != nil {
		return false
	}
	expectedBytes, err := hex.DecodeString(expected)
	if err != nil {
		return false
	}
	providedBytes, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(expectedBytes, providedBytes)
}
