package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEventID(t *testing.T) {
	a := NewEventID()
	b := NewEventID()

	assert.NotEqual(t, a, b)
	assert.True(t, HasPrefix(a, PrefixEvent))
	assert.Len(t, a, len(PrefixEvent)+1+32)
	assert.NotContains(t, a[len(PrefixEvent)+1:], "-")
}
