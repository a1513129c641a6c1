package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/subledger/internal/domain/shared"
	"github.com/orris-inc/subledger/internal/shared/constants"
	"github.com/orris-inc/subledger/internal/shared/logger"
	"github.com/orris-inc/subledger/internal/shared/utils"
)

var (
	alice = shared.MustParseIdentity("0x70997970c51812dc3a010c7d01b50e0d17dc79c8")
	owner = shared.MustParseIdentity("0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266")
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubVerifier map[string]shared.Identity

func (s stubVerifier) Verify(token string) (shared.Identity, error) {
	if id, ok := s[token]; ok {
		return id, nil
	}
	return "", errors.New("bad token")
}

type stubEnforcer struct {
	allowed map[string]bool
	err     error
}

func (s stubEnforcer) Enforce(subject, resource, action string) (bool, error) {
	return s.allowed[subject+":"+resource+":"+action], s.err
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	engine := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		identity, _ := utils.GetIdentity(c)
		c.JSON(http.StatusOK, gin.H{"identity": identity.String()})
	})
	engine.GET("/", handlers...)
	return engine
}

func do(engine *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(constants.HeaderAuthorization, authHeader)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

// =====================================================================
// TestAuthMiddleware
// =====================================================================

func TestAuthMiddleware_RequireAuth(t *testing.T) {
	auth := NewAuthMiddleware(stubVerifier{"good": alice}, logger.NewNop())
	engine := newEngine(auth.RequireAuth())

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid token", "Bearer good", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(engine, tt.header)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}

	w := do(engine, "Bearer good")
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, alice.String(), body["identity"])
}

func TestAuthMiddleware_OptionalAuth(t *testing.T) {
	auth := NewAuthMiddleware(stubVerifier{"good": alice}, logger.NewNop())
	engine := newEngine(auth.OptionalAuth())

	assert.Equal(t, http.StatusOK, do(engine, "").Code)
	assert.Equal(t, http.StatusOK, do(engine, "Bearer nope").Code)
	assert.Contains(t, do(engine, "Bearer good").Body.String(), alice.String())
}

// =====================================================================
// TestPermissionMiddleware
// =====================================================================

func TestPermissionMiddleware_RequirePermission(t *testing.T) {
	auth := NewAuthMiddleware(stubVerifier{"owner": owner, "alice": alice}, logger.NewNop())

	allowOwner := stubEnforcer{allowed: map[string]bool{
		owner.String() + ":catalog:write": true,
	}}
	perm := NewPermissionMiddleware(allowOwner, logger.NewNop())
	engine := newEngine(auth.RequireAuth(), perm.RequirePermission(constants.ObjectCatalog, constants.ActionWrite))

	assert.Equal(t, http.StatusOK, do(engine, "Bearer owner").Code)
	assert.Equal(t, http.StatusForbidden, do(engine, "Bearer alice").Code)

	failing := NewPermissionMiddleware(stubEnforcer{err: errors.New("db down")}, logger.NewNop())
	engine = newEngine(auth.RequireAuth(), failing.RequirePermission(constants.ObjectCatalog, constants.ActionWrite))
	assert.Equal(t, http.StatusInternalServerError, do(engine, "Bearer owner").Code)

	// without authentication in front
	engine = newEngine(perm.RequirePermission(constants.ObjectCatalog, constants.ActionWrite))
	assert.Equal(t, http.StatusUnauthorized, do(engine, "").Code)
}

// =====================================================================
// TestRequestID / TestRecovery / TestCORS
// =====================================================================

func TestRequestID(t *testing.T) {
	engine := newEngine(RequestID())

	w := do(engine, "")
	assert.NotEmpty(t, w.Header().Get(constants.HeaderXRequestID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constants.HeaderXRequestID, "req-1")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, "req-1", w.Header().Get(constants.HeaderXRequestID))
}

func TestRecovery(t *testing.T) {
	engine := gin.New()
	engine.Use(Recovery(logger.NewNop()), Logger(logger.NewNop()))
	engine.GET("/", func(c *gin.Context) { panic("boom") })

	w := do(engine, "Bearer secret")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error occurred")
}

func TestCORS(t *testing.T) {
	engine := gin.New()
	engine.Use(CORS([]string{"https://app.example"}))
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	engine.OPTIONS("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://app.example")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

// =====================================================================
// TestRateLimitMiddleware
// =====================================================================

type stubLimiter struct {
	budget map[string]int
	err    error
	keys   []string
}

func (s *stubLimiter) Allow(_ context.Context, key string) (bool, error) {
	s.keys = append(s.keys, key)
	if s.err != nil {
		return false, s.err
	}
	s.budget[key]--
	return s.budget[key] >= 0, nil
}

func TestRateLimitMiddleware_KeysOnIdentity(t *testing.T) {
	limiter := &stubLimiter{budget: map[string]int{"id:" + alice.String(): 1}}
	auth := NewAuthMiddleware(stubVerifier{"good": alice}, logger.NewNop())
	engine := newEngine(auth.RequireAuth(), NewRateLimitMiddleware(limiter, logger.NewNop()).Limit())

	assert.Equal(t, http.StatusOK, do(engine, "Bearer good").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(engine, "Bearer good").Code)
	assert.Equal(t, []string{"id:" + alice.String(), "id:" + alice.String()}, limiter.keys)
}

func TestRateLimitMiddleware_FallsBackToIP(t *testing.T) {
	limiter := &stubLimiter{budget: map[string]int{}}
	engine := newEngine(NewRateLimitMiddleware(limiter, logger.NewNop()).Limit())

	assert.Equal(t, http.StatusTooManyRequests, do(engine, "").Code)
	require.Len(t, limiter.keys, 1)
	assert.Contains(t, limiter.keys[0], "ip:")
}

func TestRateLimitMiddleware_FailsOpen(t *testing.T) {
	limiter := &stubLimiter{err: errors.New("redis down")}
	engine := newEngine(NewRateLimitMiddleware(limiter, logger.NewNop()).Limit())

	assert.Equal(t, http.StatusOK, do(engine, "").Code)
}

func TestRateLimitMiddleware_NilIsPassThrough(t *testing.T) {
	var m *RateLimitMiddleware
	engine := newEngine(m.Limit())

	assert.Equal(t, http.StatusOK, do(engine, "").Code)
}
