package mappers

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/subledger/internal/domain/catalog"
	"github.com/orris-inc/subledger/internal/domain/registration"
	"github.com/orris-inc/subledger/internal/domain/shared"
	"github.com/orris-inc/subledger/internal/domain/subscription"
	"github.com/orris-inc/subledger/internal/infrastructure/persistence/models"
)

var alice = shared.MustParseIdentity("0x70997970c51812dc3a010c7d01b50e0d17dc79c8")

func TestRegistrationMapper_RejectsCorruptIdentity(t *testing.T) {
	_, err := NewRegistrationMapper().ToEntity(&models.RegistrationModel{Identity: "not-an-address"})
	assert.Error(t, err)

	entity, err := NewRegistrationMapper().ToEntity(nil)
	assert.NoError(t, err)
	assert.Nil(t, entity)
}

func TestRegistrationMapper_KeepsMetadataVerbatim(t *testing.T) {
	r, err := registration.NewRegistration(alice, "<b>not sanitised</b>", time.Unix(5, 0))
	require.NoError(t, err)

	model := NewRegistrationMapper().ToModel(r)
	back, err := NewRegistrationMapper().ToEntity(model)
	require.NoError(t, err)

	assert.Equal(t, "<b>not sanitised</b>", back.MetadataURL())
	assert.Equal(t, int64(5), model.RegisteredAt)
}

func TestSubscriptionMapper_UsesUnixSeconds(t *testing.T) {
	v := catalog.ReconstructVariant(2, 9, 60, true, time.Unix(0, 0), time.Unix(0, 0))
	s, err := subscription.NewSubscription(alice, v, time.Unix(1000, 0))
	require.NoError(t, err)

	model := NewSubscriptionMapper().ToModel(s)
	assert.Equal(t, int64(1060), model.ExpiresAt)

	back, err := NewSubscriptionMapper().ToEntity(model)
	require.NoError(t, err)
	assert.True(t, back.ExpiresAt().Equal(s.ExpiresAt()))
	assert.Equal(t, uint64(9), back.AmountPaid())
}

func TestEventMapper_PayloadCarriesDomainFields(t *testing.T) {
	ev := catalog.NewVariantIssuedEvent(7, time.Unix(42, 0))

	model, err := NewEventMapper().ToModel(3, ev)
	require.NoError(t, err)

	rec := NewEventMapper().ToRecord(model)
	assert.Equal(t, uint64(3), rec.Sequence)
	assert.Equal(t, catalog.EventTypeVariantIssued, rec.EventType)
	assert.Equal(t, "7", rec.AggregateID)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Payload, &decoded))
	assert.Equal(t, float64(7), decoded["variant_id"])
	assert.Equal(t, ev.EventID, decoded["event_id"])
}
