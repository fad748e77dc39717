// Package utils provides utility functions for the application.
package utils

import "strings"

func ToPtr[T any](v T) *T {
	return &v
}

func IsTrue(b *bool) bool {
	return b != nil && *b
}

// NormalizeEmail lowercases and trims an email address the way the
// public application form stores it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ObfuscateEmail masks the local part of an address for log output,
// e.g. "someone@example.com" -> "so***@example.com".
func ObfuscateEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at <= 0 {
		return email
	}
	local := email[:at]
	if len(local) <= 2 {
		return local + "***" + email[at:]
	}
	return local[:2] + "***" + email[at:]
}
