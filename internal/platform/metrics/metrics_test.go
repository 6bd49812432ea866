package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveGeneration(t *testing.T) {
	before := testutil.ToFloat64(GenerationRequestsTotal.WithLabelValues("quiz", "ok"))
	tokensBefore := testutil.ToFloat64(GenerationTokensTotal.WithLabelValues("quiz"))

	ObserveGeneration("quiz", "ok", 120)
	ObserveGeneration("quiz", "ok", 0)

	assert.Equal(t, before+2, testutil.ToFloat64(GenerationRequestsTotal.WithLabelValues("quiz", "ok")))
	assert.Equal(t, tokensBefore+120, testutil.ToFloat64(GenerationTokensTotal.WithLabelValues("quiz")))
}

func TestObserveIllustrations(t *testing.T) {
	ok := testutil.ToFloat64(StorybookIllustrationsTotal.WithLabelValues("ok"))
	missing := testutil.ToFloat64(StorybookIllustrationsTotal.WithLabelValues("missing"))

	ObserveIllustrations(8, 2)

	assert.Equal(t, ok+8, testutil.ToFloat64(StorybookIllustrationsTotal.WithLabelValues("ok")))
	assert.Equal(t, missing+2, testutil.ToFloat64(StorybookIllustrationsTotal.WithLabelValues("missing")))
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/api/classes/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.CollectAndCount(HTTPRequestDuration)

	for _, id := range []string{"a", "b", "c"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/classes/"+id, nil))
		require.Equal(t, http.StatusTeapot, rec.Code)
	}

	// Three requests to distinct ids land in a single series.
	assert.Equal(t, before+1, testutil.CollectAndCount(HTTPRequestDuration))
}

func TestMiddlewareUnmatchedRoute(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/known", func(http.ResponseWriter, *http.Request) {})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/plain", nil)
	assert.Equal(t, "unmatched", routePattern(req))
}
