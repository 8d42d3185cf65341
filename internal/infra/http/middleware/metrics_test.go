package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsCountsRequests(t *testing.T) {
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/teapot", "418"))

	h := Metrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/teapot", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/teapot", "418")))
}

func TestDomainCounters(t *testing.T) {
	okBefore := testutil.ToFloat64(leadsCaptured.WithLabelValues("ok"))
	failedBefore := testutil.ToFloat64(leadsCaptured.WithLabelValues("failed"))
	statusBefore := testutil.ToFloat64(statusUpdates.WithLabelValues("Отказ"))
	appendBefore := testutil.ToFloat64(recordStoreErrors.WithLabelValues("append"))
	validationBefore := testutil.ToFloat64(validationFailures)

	RecordLeadCaptured(true)
	RecordLeadCaptured(false)
	RecordStatusUpdate("Отказ")
	RecordRecordStoreError("append")
	RecordValidationFailure()

	assert.Equal(t, okBefore+1, testutil.ToFloat64(leadsCaptured.WithLabelValues("ok")))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(leadsCaptured.WithLabelValues("failed")))
	assert.Equal(t, statusBefore+1, testutil.ToFloat64(statusUpdates.WithLabelValues("Отказ")))
	assert.Equal(t, appendBefore+1, testutil.ToFloat64(recordStoreErrors.WithLabelValues("append")))
	assert.Equal(t, validationBefore+1, testutil.ToFloat64(validationFailures))
}
