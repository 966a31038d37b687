package order

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Qathar8/Arianna-beauty/internal/auth"
	"github.com/Qathar8/Arianna-beauty/internal/config"
	"github.com/Qathar8/Arianna-beauty/internal/dto"
	"github.com/Qathar8/Arianna-beauty/internal/entity"
	"github.com/Qathar8/Arianna-beauty/pkg/errorbank"
)

// fakeIntake is a canned Intake double.
type fakeIntake struct {
	orders  []dto.OrderResponse
	created *dto.OrderResponse
	patched *dto.OrderResponse
	err     error

	lastCreate dto.CreateOrderRequest
	lastPatch  dto.PatchOrderRequest
	lastID     int64
}

func (f *fakeIntake) List(ctx context.Context) ([]dto.OrderResponse, error) {
	return f.orders, f.err
}

func (f *fakeIntake) Create(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	f.lastCreate = req
	if f.err != nil {
		return nil, f.err
	}
	return f.created, nil
}

func (f *fakeIntake) Patch(ctx context.Context, id int64, req dto.PatchOrderRequest) (*dto.OrderResponse, error) {
	f.lastID = id
	f.lastPatch = req
	if f.err != nil {
		return nil, f.err
	}
	return f.patched, nil
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestServer(t *testing.T, svc Intake, authEnabled bool) *echo.Echo {
	t.Helper()
	e := echo.New()
	cfg := config.Config{
		Auth: config.Auth{Enabled: authEnabled, AdminClaimHeader: "X-Admin-Claim"},
	}
	Register(e, NewHandler(svc), auth.NewGate(cfg, nil))
	return e
}

func doJSON(e *echo.Echo, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestCheckoutReturns201(t *testing.T) {
	svc := &fakeIntake{created: &dto.OrderResponse{
		ID:        5,
		Items:     []dto.OrderItem{{ID: 1, Name: "Rose Oil", Price: 250000, Quantity: 2}},
		Total:     500000,
		Whatsapp:  entity.SentinelPendingContact,
		CreatedAt: time.Now().UTC(),
	}}
	e := newTestServer(t, svc, false)

	rec := doJSON(e, http.MethodPost, "/api/orders",
		`{"items":[{"id":1,"name":"Rose Oil","price":250000,"quantity":2}],"total":500000}`, nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)
	require.Nil(t, env.Error)

	var view dto.OrderResponse
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, int64(5), view.ID)
	assert.Equal(t, entity.SentinelPendingContact, view.Whatsapp)

	require.NotNil(t, svc.lastCreate.Total)
	assert.Equal(t, int64(500000), *svc.lastCreate.Total)
}

func TestCheckoutValidationErrorEnvelope(t *testing.T) {
	svc := &fakeIntake{err: errorbank.BadRequest("items must be a non-empty list")}
	e := newTestServer(t, svc, false)

	rec := doJSON(e, http.MethodPost, "/api/orders", `{"items":[],"total":0}`, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "null", string(env.Data))
	require.NotNil(t, env.Error)
	assert.Equal(t, "bad_request", env.Error.Kind)
	assert.Equal(t, "items must be a non-empty list", env.Error.Message)
}

func TestCheckoutStaysPublicWhenGateEnabled(t *testing.T) {
	svc := &fakeIntake{created: &dto.OrderResponse{ID: 1, Items: []dto.OrderItem{}, Total: 100}}
	e := newTestServer(t, svc, true)

	rec := doJSON(e, http.MethodPost, "/api/orders", `{"items":[{"id":1,"name":"x","price":100,"quantity":1}],"total":100}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestListRequiresAdminWhenGateEnabled(t *testing.T) {
	svc := &fakeIntake{orders: []dto.OrderResponse{}}
	e := newTestServer(t, svc, true)

	rec := doJSON(e, http.MethodGet, "/api/orders", "", nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "forbidden", env.Error.Kind)

	rec = doJSON(e, http.MethodGet, "/api/orders", "", map[string]string{"X-Admin-Claim": "true"})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestPatchForwardsIDAndFields(t *testing.T) {
	svc := &fakeIntake{patched: &dto.OrderResponse{
		ID:       7,
		Items:    []dto.OrderItem{},
		Total:    100,
		Whatsapp: "+254700000000",
	}}
	e := newTestServer(t, svc, false)

	rec := doJSON(e, http.MethodPatch, "/api/orders/7", `{"whatsapp":"+254700000000"}`, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), svc.lastID)
	require.NotNil(t, svc.lastPatch.Whatsapp)
	assert.Equal(t, "+254700000000", *svc.lastPatch.Whatsapp)
	assert.Nil(t, svc.lastPatch.Status)
}

func TestPatchRejectsMalformedID(t *testing.T) {
	e := newTestServer(t, &fakeIntake{}, false)

	rec := doJSON(e, http.MethodPatch, "/api/orders/seven", `{"status":"done"}`, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "invalid id", env.Error.Message)
}

func TestPatchUnknownOrder404(t *testing.T) {
	svc := &fakeIntake{err: errorbank.NotFound("order not found")}
	e := newTestServer(t, svc, false)

	rec := doJSON(e, http.MethodPatch, "/api/orders/99", `{"status":"done"}`, nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "not_found", env.Error.Kind)
}
