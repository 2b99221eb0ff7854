package kuda

import (
	"strings"

	"github.com/google/uuid"
)

// newReference returns a fresh correlation reference: a UUID with the
// hyphens stripped, the format the Kuda API expects for requestRef and
// tracking references.
func newReference() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Envelope wraps operation data in the Kuda request envelope with a fresh
// requestRef. Callers driving Do directly, for stock or registry-added
// operations alike, can build their payloads with it.
func Envelope(serviceType string, data map[string]any) map[string]any {
	if data == nil {
		data = map[string]any{}
	}
	return map[string]any{
		"serviceType": serviceType,
		"requestRef":  newReference(),
		"Data":        data,
	}
}
