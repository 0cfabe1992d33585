package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minerva/pkg/errors"
	"minerva/pkg/logger"
)

type stubChecker struct {
	err error
}

func (c stubChecker) Health(ctx context.Context) error { return c.err }

func newHandler(checkers map[string]Checker) *Handler {
	return New(logger.Get(), checkers, "minerva", "test")
}

func doRequest(t *testing.T, fn http.HandlerFunc, path string) (*httptest.ResponseRecorder, Status) {
	t.Helper()

	rec := httptest.NewRecorder()
	fn(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var status Status
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&status))
	return rec, status
}

func TestHandleLiveness(t *testing.T) {
	h := newHandler(nil)

	rec := httptest.NewRecorder()
	h.HandleLiveness(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleHealth_AllHealthy(t *testing.T) {
	h := newHandler(map[string]Checker{
		"postgres": stubChecker{},
		"redis":    stubChecker{},
	})

	rec, status := doRequest(t, h.HandleHealth, "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", status.Status)
	assert.Len(t, status.Checks, 2)
	assert.Equal(t, "healthy", status.Checks["postgres"].Status)
}

func TestHandleHealth_PartialOutageIsDegraded(t *testing.T) {
	h := newHandler(map[string]Checker{
		"postgres":   stubChecker{},
		"clickhouse": stubChecker{err: errors.New("connection refused")},
	})

	rec, status := doRequest(t, h.HandleHealth, "/health")

	// Degraded still serves traffic
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "degraded", status.Status)
	assert.Equal(t, "unhealthy", status.Checks["clickhouse"].Status)
	assert.Contains(t, status.Checks["clickhouse"].Error, "connection refused")
}

func TestHandleHealth_TotalOutageIsUnhealthy(t *testing.T) {
	h := newHandler(map[string]Checker{
		"postgres": stubChecker{err: errors.New("down")},
	})

	rec, status := doRequest(t, h.HandleHealth, "/health")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "unhealthy", status.Status)
}

func TestHandleReadiness_AnyFailureIsNotReady(t *testing.T) {
	h := newHandler(map[string]Checker{
		"postgres": stubChecker{},
		"redis":    stubChecker{err: errors.New("down")},
	})

	rec, status := doRequest(t, h.HandleReadiness, "/ready")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "unhealthy", status.Status)
}
