package engine

import (
	stealth "github.com/anatolykoptev/go-stealth"
)

// ChromeHeaders returns a fresh Chrome header set matching the TLS fingerprint
// used by BrowserClient.
func ChromeHeaders() map[string]string { return stealth.ChromeHeaders() }

// IsRetryableStatus reports whether an HTTP status is worth another attempt.
func IsRetryableStatus(code int) bool { return stealth.IsRetryableStatus(code) }
