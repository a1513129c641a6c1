package catalog

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVariant(t *testing.T) {
	now := time.Unix(1_700_000_000, 0).UTC()

	v := NewVariant(0, 100, 100_000_000, true, now)

	assert.Equal(t, uint64(0), v.ID())
	assert.Equal(t, uint64(100), v.Cost())
	assert.Equal(t, uint64(100_000_000), v.TimeToLive())
	assert.Equal(t, 100_000_000*time.Second, v.TimeToLiveDuration())
	assert.True(t, v.IsAvailable())

	evts := v.GetEvents()
	require.Len(t, evts, 1)
	ev := evts[0].(*VariantIssuedEvent)
	assert.Equal(t, EventTypeVariantIssued, ev.GetEventType())
	assert.Equal(t, uint64(0), ev.VariantID)
	assert.Equal(t, "0", ev.GetAggregateID())
}

func TestNewVariant_AcceptsZeroValues(t *testing.T) {
	v := NewVariant(7, 0, 0, false, time.Now())

	assert.Zero(t, v.Cost())
	assert.Zero(t, v.TimeToLive())
	assert.False(t, v.IsAvailable())
}

func TestSetAvailable_Idempotent(t *testing.T) {
	now := time.Unix(10, 0)
	v := ReconstructVariant(1, 5, 60, true, now, now)

	assert.False(t, v.SetAvailable(true, now.Add(time.Second)))
	assert.Equal(t, now, v.UpdatedAt())

	assert.True(t, v.SetAvailable(false, now.Add(time.Second)))
	assert.False(t, v.SetAvailable(false, now.Add(2*time.Second)))
	assert.False(t, v.IsAvailable())
	assert.Empty(t, v.GetEvents(), "availability changes are not events")
}

func TestErrVariantNotFoundByID(t *testing.T) {
	err := ErrVariantNotFoundByID(42)
	assert.True(t, errors.Is(err, ErrVariantNotFound))
	assert.Contains(t, err.Error(), "id=42")
}
