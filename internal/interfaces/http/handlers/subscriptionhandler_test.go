package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	subdto "github.com/orris-inc/subledger/internal/application/subscription/dto"
	"github.com/orris-inc/subledger/internal/domain/catalog"
	"github.com/orris-inc/subledger/internal/domain/payment"
	"github.com/orris-inc/subledger/internal/domain/subscription"
	"github.com/orris-inc/subledger/internal/interfaces/http/handlers/testutil"
)

func newTestSubscriptionHandler(
	subscribeUC subscribeUseCase,
	unsubscribeUC unsubscribeUseCase,
	getSubscriptionUC getSubscriptionUseCase,
	hasActiveUC hasActiveSubscriptionUseCase,
) *SubscriptionHandler {
	return NewSubscriptionHandler(subscribeUC, unsubscribeUC, getSubscriptionUC, hasActiveUC, testutil.NewMockLogger())
}

func activeSubscriptionDTO() *subdto.SubscriptionDTO {
	variantID := uint64(0)
	subscribedAt := time.Unix(1_700_000_000, 0).UTC()
	expiresAt := subscribedAt.Add(100_000_000 * time.Second)
	return &subdto.SubscriptionDTO{
		Identity:     alice.String(),
		State:        "active",
		Active:       true,
		VariantID:    &variantID,
		SubscribedAt: &subscribedAt,
		ExpiresAt:    &expiresAt,
		AmountPaid:   100,
	}
}

// =====================================================================
// Subscribe
// =====================================================================

func TestSubscriptionHandler_Subscribe_Success(t *testing.T) {
	subscribeUC := &mockSubscribeUC{result: activeSubscriptionDTO()}
	handler := newTestSubscriptionHandler(subscribeUC, nil, nil, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/subscriptions", map[string]any{"variant_id": 0})
	testutil.SetIdentityContext(c, alice)

	handler.Subscribe(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, alice, subscribeUC.cmd.Identity)
	assert.Equal(t, uint64(0), subscribeUC.cmd.VariantID)
}

func TestSubscriptionHandler_Subscribe_MissingVariant(t *testing.T) {
	handler := newTestSubscriptionHandler(&mockSubscribeUC{}, nil, nil, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/subscriptions", map[string]any{})
	testutil.SetIdentityContext(c, alice)

	handler.Subscribe(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubscriptionHandler_Subscribe_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantReason string
	}{
		{"already active", subscription.ErrActiveUntil(time.Unix(1_800_000_000, 0)), http.StatusConflict, ReasonAlreadyActive},
		{"unknown variant", catalog.ErrVariantNotFoundByID(4), http.StatusNotFound, ReasonVariantNotFound},
		{"insufficient funds", payment.ErrInsufficientBalance(alice.String(), 0, 100), http.StatusPaymentRequired, ReasonInsufficientFunds},
		{"no allowance", payment.ErrAllowanceExceeded(alice.String(), bob.String(), 0, 100), http.StatusPaymentRequired, ReasonTransferRejected},
		{"unavailable", subscription.ErrVariantUnavailable, http.StatusConflict, ReasonVariantUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestSubscriptionHandler(&mockSubscribeUC{err: tt.err}, nil, nil, nil)
			c, w := testutil.NewTestContext(http.MethodPost, "/subscriptions", map[string]any{"variant_id": 4})
			testutil.SetIdentityContext(c, alice)

			handler.Subscribe(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp testutil.APIResponse
			require.NoError(t, testutil.ParseResponse(w, &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantReason, resp.Error.Reason)
		})
	}
}

// =====================================================================
// Unsubscribe
// =====================================================================

func TestSubscriptionHandler_Unsubscribe(t *testing.T) {
	expiresAt := time.Unix(1_800_000_000, 0).UTC()
	handler := newTestSubscriptionHandler(nil, &mockUnsubscribeUC{result: &subdto.UnsubscribeResultDTO{
		Identity:  alice.String(),
		VariantID: 0,
		ExpiresAt: expiresAt,
	}}, nil, nil)

	c, w := testutil.NewTestContext(http.MethodDelete, "/subscriptions", nil)
	testutil.SetIdentityContext(c, alice)

	handler.Unsubscribe(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var data subdto.UnsubscribeResultDTO
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.True(t, expiresAt.Equal(data.ExpiresAt))
}

func TestSubscriptionHandler_Unsubscribe_NotSubscribed(t *testing.T) {
	handler := newTestSubscriptionHandler(nil, &mockUnsubscribeUC{err: subscription.ErrNotSubscribed}, nil, nil)

	c, w := testutil.NewTestContext(http.MethodDelete, "/subscriptions", nil)
	testutil.SetIdentityContext(c, alice)

	handler.Unsubscribe(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// =====================================================================
// GetMySubscription
// =====================================================================

func TestSubscriptionHandler_GetMySubscription(t *testing.T) {
	handler := newTestSubscriptionHandler(nil, nil,
		&mockGetSubscriptionUC{result: activeSubscriptionDTO()},
		&mockHasActiveUC{active: true},
	)

	c, w := testutil.NewTestContext(http.MethodGet, "/subscriptions/me", nil)
	testutil.SetIdentityContext(c, alice)

	handler.GetMySubscription(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var data subdto.SubscriptionDTO
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.True(t, data.Active)
	assert.Equal(t, "active", data.State)
}

func TestSubscriptionHandler_GetMySubscription_Failures(t *testing.T) {
	handler := newTestSubscriptionHandler(nil, nil,
		&mockGetSubscriptionUC{result: activeSubscriptionDTO()},
		&mockHasActiveUC{err: errors.New("cache unreachable")},
	)
	c, w := testutil.NewTestContext(http.MethodGet, "/subscriptions/me", nil)
	testutil.SetIdentityContext(c, alice)
	handler.GetMySubscription(c)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	c, w = testutil.NewTestContext(http.MethodGet, "/subscriptions/me", nil)
	handler.GetMySubscription(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
