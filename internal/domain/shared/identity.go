// Package shared holds value objects used by more than one bounded context.
package shared

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidIdentity is returned for strings that are not a 20-byte hex
// address with a 0x prefix.
var ErrInvalidIdentity = errors.New("invalid identity")

const identityHexLen = 40

// Identity is the opaque account address that registers, subscribes and
// holds token balances. It is always stored in lower case.
type Identity string

// ParseIdentity validates and normalises an address such as
// "0x70997970C51812dc3A010C7d01b50e0d17dc79C8".
func ParseIdentity(s string) (Identity, error) {
	s = strings.TrimSpace(s)
	if len(s) != identityHexLen+2 || !(strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")) {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentity, s)
	}
	lower := strings.ToLower(s[2:])
	if _, err := hex.DecodeString(lower); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentity, s)
	}
	return Identity("0x" + lower), nil
}

// MustParseIdentity panics on invalid input. Intended for constants and tests.
func MustParseIdentity(s string) Identity {
	id, err := ParseIdentity(s)
	if err != nil {
		panic(err)
	}
	return id
}

// IsValidIdentity reports whether s parses as an Identity.
func IsValidIdentity(s string) bool {
	_, err := ParseIdentity(s)
	return err == nil
}

func (i Identity) String() string {
	return string(i)
}

func (i Identity) IsZero() bool {
	return i == ""
}
