package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Qathar8/Arianna-beauty/internal/config"
)

const claimHeader = "X-Admin-Claim"

func newGate(enabled bool) *Gate {
	cfg := config.Config{Auth: config.Auth{Enabled: enabled, AdminClaimHeader: claimHeader}}
	return NewGate(cfg, nil)
}

func serve(t *testing.T, gate *Gate, header string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.GET("/guarded", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}, gate.RequireAdmin)

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if header != "" {
		req.Header.Set(claimHeader, header)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestDisabledGateIsPassthrough(t *testing.T) {
	rec := serve(t, newGate(false), "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEnabledGateRejectsMissingClaim(t *testing.T) {
	rec := serve(t, newGate(true), "")
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"forbidden"`)
	assert.Contains(t, rec.Body.String(), "admin access required")
}

func TestEnabledGateRejectsFalseClaim(t *testing.T) {
	rec := serve(t, newGate(true), "false")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestEnabledGateRejectsMalformedClaim(t *testing.T) {
	rec := serve(t, newGate(true), "yep")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestEnabledGateAdmitsTrueClaim(t *testing.T) {
	rec := serve(t, newGate(true), "true")
	assert.Equal(t, http.StatusOK, rec.Code)
}
