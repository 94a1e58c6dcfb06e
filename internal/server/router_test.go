package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"orr-overpotential/internal/config"
	"orr-overpotential/internal/electrochem"
	"orr-overpotential/internal/observability"
	"orr-overpotential/internal/overpotential"
	"orr-overpotential/internal/testutil"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	observability.Logger = zap.NewNop()
	require.NoError(t, electrochem.InitMetrics())
	return NewRouter(electrochem.NewService(overpotential.DefaultConfig(overpotential.ORR), config.DefaultPresets()))
}

func TestNewRouterHealthEndpoint(t *testing.T) {
	router := newRouter(t)

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/health", nil), router)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestNewRouterMetricsEndpoint(t *testing.T) {
	router := newRouter(t)

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/metrics", nil), router)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines", "expected Go runtime metrics in /metrics output")
}

func TestNewRouterOverpotentialSetsHeaderAndOmitsRequestIDInBody(t *testing.T) {
	router := newRouter(t)

	w := testutil.PostJSON(router, "/overpotential", `{"steps": [{"electrons": 1, "delta_e": -1.0}]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	requestID := w.Result().Header.Get("X-Request-ID")
	require.NotEmpty(t, requestID)
	_, err := uuid.Parse(requestID)
	assert.NoError(t, err, "expected valid UUID in X-Request-ID")

	var payload map[string]any
	testutil.DecodeJSONBody(t, w.Body, &payload)

	assert.NotContains(t, payload, "request_id")
	assert.Equal(t, 1.0, payload["limiting_potential"])
	assert.Equal(t, 0.0, payload["limiting_step_index"])
	assert.Equal(t, 1.0, payload["total_electrons"])
}
