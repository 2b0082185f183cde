package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"game-catalog-service/internal/http/handlers"
	"game-catalog-service/internal/testutil"
)

func TestRouterRoutesKnownPaths(t *testing.T) {
	h := handlers.NewHandler(testutil.NewService(t, testutil.SampleDrafts()...), nil, nil)

	router := NewRouter(h)

	cases := map[string]int{
		"/health":           http.StatusOK,
		"/ready":            http.StatusOK,
		"/games":            http.StatusOK,
		"/games/1":          http.StatusOK,
		"/games/999":        http.StatusNotFound,
		"/games/-100twenty": http.StatusNotFound,
	}

	for path, expected := range cases {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		if rr.Code != expected {
			t.Fatalf("route %s expected status %d, got %d", path, expected, rr.Code)
		}
	}
}

func TestRouterUnknownRouteReturns404(t *testing.T) {
	h := handlers.NewHandler(testutil.NewService(t), nil, nil)

	router := NewRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/does-not-exist", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown route, got %d", rr.Code)
	}
}
