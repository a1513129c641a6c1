// Package id generates identifiers for ledger records.
package id

import (
	"strings"

	"github.com/google/uuid"
)

// PrefixEvent marks ledger event identifiers.
const PrefixEvent = "evt"

// NewEventID returns a prefixed random identifier, e.g. "evt_3f2c...".
func NewEventID() string {
	return PrefixEvent + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// HasPrefix reports whether s was generated with the given prefix.
func HasPrefix(s, prefix string) bool {
	return strings.HasPrefix(s, prefix+"_")
}
