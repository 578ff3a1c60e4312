package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Uploads(t *testing.T) {
	m := New()

	m.UploadAccepted(12)
	m.UploadAccepted(3)
	m.UploadRejected("UPL-010001")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.uploads.WithLabelValues(ResultAccepted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.uploads.WithLabelValues(ResultRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejections.WithLabelValues("UPL-010001")))
	assert.Equal(t, 15.0, testutil.ToFloat64(m.ingestedRows))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveRequest(http.MethodPost, "/api/v1/uploads", http.StatusCreated, 20*time.Millisecond)
	m.UploadAccepted(1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "sales_uploads_total"))
	assert.True(t, strings.Contains(body, `http_request_duration_seconds_count{method="POST",route="/api/v1/uploads",status="201"} 1`))
}
