package metrics

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/goliatone/go-mdshelf/internal/domain"
)

func TestRecorderCountsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := New(reg)

	rec.ObserveScan(ResultOK, 10*time.Millisecond, 2, 5)
	rec.ObserveScan(ResultNotFound, time.Millisecond, 0, 0)
	rec.IncrementRead(ResultOK)
	rec.IncrementRead(ResultForbidden)
	rec.IncrementRead(ResultForbidden)
	rec.IncrementRender(ResultOK)

	if got := testutil.ToFloat64(rec.scanTotal.WithLabelValues(ResultOK)); got != 1 {
		t.Fatalf("expected one successful scan, got %v", got)
	}
	if got := testutil.ToFloat64(rec.scanNodes.WithLabelValues("file")); got != 5 {
		t.Fatalf("expected last scan file gauge 5, got %v", got)
	}
	if got := testutil.ToFloat64(rec.readTotal.WithLabelValues(ResultForbidden)); got != 2 {
		t.Fatalf("expected two forbidden reads, got %v", got)
	}
	if got := testutil.ToFloat64(rec.renderTotal.WithLabelValues(ResultOK)); got != 1 {
		t.Fatalf("expected one render, got %v", got)
	}
}

func TestMiddlewareLabelsByPattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := New(reg)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := rec.Middleware(mux)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/items/%d", i), nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	got := testutil.ToFloat64(rec.requestsTotal.WithLabelValues(http.MethodGet, "GET /api/items/{id}", "418"))
	if got != 2 {
		t.Fatalf("expected two requests under the route pattern, got %v", got)
	}
}

func TestHandlerExposesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := New(reg)
	rec.IncrementRead(ResultOK)

	rr := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `mdshelf_read_total{result="ok"} 1`) {
		t.Fatalf("expected read counter in exposition, got %s", rr.Body.String())
	}
}

func TestResultLabel(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ResultOK},
		{domain.NewPathError("read", domain.ErrForbidden, "x", nil), ResultForbidden},
		{domain.NewPathError("read", domain.ErrNotAFile, "x", nil), ResultNotAFile},
		{domain.NewPathError("scan", domain.ErrNotADirectory, "x", nil), ResultNotADirectory},
		{domain.NewPathError("scan", domain.ErrNotFound, "x", nil), ResultNotFound},
		{fmt.Errorf("wrapped: %w", context.Canceled), ResultCanceled},
		{fmt.Errorf("boom"), ResultError},
	}
	for _, tc := range cases {
		if got := ResultLabel(tc.err); got != tc.want {
			t.Fatalf("ResultLabel(%v) = %s, want %s", tc.err, got, tc.want)
		}
	}
}
