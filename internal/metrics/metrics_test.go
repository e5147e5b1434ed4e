package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_CountsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/things/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	counter := HTTPRequestsTotal.WithLabelValues("/things/{id}", http.MethodGet, "418")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/things/"+id, nil))
		assert.Equal(t, http.StatusTeapot, rec.Code)
	}

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestCacheCounters(t *testing.T) {
	hit := CacheLookupsTotal.WithLabelValues("hit")
	miss := CacheLookupsTotal.WithLabelValues("miss")
	h0, m0 := testutil.ToFloat64(hit), testutil.ToFloat64(miss)

	CacheHit()
	CacheMiss()
	CacheMiss()

	assert.Equal(t, h0+1, testutil.ToFloat64(hit))
	assert.Equal(t, m0+2, testutil.ToFloat64(miss))
}

func TestMiddleware_UnmatchedPathsShareOneLabel(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/known", func(w http.ResponseWriter, r *http.Request) {})

	counter := HTTPRequestsTotal.WithLabelValues("unmatched", http.MethodGet, "404")
	before := testutil.ToFloat64(counter)

	for _, path := range []string{"/nope", "/nope/again", "/random-123"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}

	assert.Equal(t, before+3, testutil.ToFloat64(counter))
}
