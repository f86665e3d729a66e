// internal/engine/dedupe/dedupe.go

// Package dedupe provides key-based de-duplication for catalog merges and
// idempotency tokens for outbound write requests.
package dedupe

import "strings"

// By removes items whose key has already been seen, keeping the first
// occurrence and the relative order of survivors.
func By[T any](items []T, keyFn func(T) string) []T {
	seen := make(map[string]bool, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		key := keyFn(item)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}

// Fingerprint derives a stable contact fingerprint used to suppress
// duplicate lead and application submissions for the same person.
func Fingerprint(email, phone string) string {
	return normalizeContact(email) + "::" + normalizeContact(phone)
}

func normalizeContact(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
