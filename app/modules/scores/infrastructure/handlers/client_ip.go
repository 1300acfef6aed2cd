package scoreshandlers

import (
	"net/http"
	"strings"
)

// UnknownClient is the shared identifier of clients that send no forwarding
// headers. They all draw from one rate-limit budget.
const UnknownClient = "unknown"

// ClientIdentifier derives the rate-limit key from proxy headers: the first
// X-Forwarded-For entry, then X-Real-IP, then UnknownClient. The value is
// client-controlled and only meaningful behind a proxy that overwrites it.
func ClientIdentifier(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	return UnknownClient
}
