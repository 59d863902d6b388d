package metrics

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveAICall(t *testing.T) {
	before := testutil.ToFloat64(aiCalls.WithLabelValues("generate_proposal", "error"))
	ObserveAICall("generate_proposal", time.Second, errors.New("quota"))
	assert.Equal(t, before+1, testutil.ToFloat64(aiCalls.WithLabelValues("generate_proposal", "error")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	IncRateLimited("auth")
	ObserveHTTP("GET", "/health", 200, 3*time.Millisecond)

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	body := w.Body.String()
	assert.True(t, strings.Contains(body, "autorfp_rate_limited_total"))
	assert.True(t, strings.Contains(body, "autorfp_http_requests_total"))
}
