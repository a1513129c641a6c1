package utils

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/orris-inc/subledger/internal/shared/errors"
)

type transferRequest struct {
	To     string `json:"to" binding:"required,identity"`
	Amount uint64 `json:"amount" binding:"required"`
}

func bind(t *testing.T, body string) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	RegisterValidators()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req transferRequest
	return c.ShouldBindJSON(&req)
}

func TestIdentityBinding(t *testing.T) {
	require.NoError(t, bind(t, `{"to":"0x70997970C51812dc3A010C7d01b50e0d17dc79C8","amount":5}`))

	err := bind(t, `{"to":"alice","amount":5}`)
	require.Error(t, err)

	appErr := apperrors.GetAppError(BindingError(err))
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
	assert.Contains(t, appErr.Details, "to must be a 0x-prefixed 20-byte hex address")
}

func TestBindingError_MalformedJSON(t *testing.T) {
	err := bind(t, `{"to":`)
	require.Error(t, err)

	appErr := apperrors.GetAppError(BindingError(err))
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Equal(t, "Invalid request body", appErr.Message)
}
