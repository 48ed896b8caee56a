package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/manifold-dev/manifold/router"
)

func newEchoApp() *router.Router {
	app := router.New()
	app.Handle(
		router.Get("/items/{id}").
			Int("id").
			To(func(ctx context.Context, args router.Args) any {
				return map[string]any{"id": args.Int("id")}
			}),
		router.Post("/echo").
			RawBody().
			To(func(ctx context.Context, args router.Args) any {
				return args.Body()
			}),
	)

	return app
}

func TestAppHandler_Dispatch(t *testing.T) {
	handler := New(newEchoApp(), zaptest.NewLogger(t))

	req := httptest.NewRequest(http.MethodGet, "/items/42", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	res := w.Result()
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/json", res.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"id":42}`, string(body))
}

func TestAppHandler_QueryShadowsPath(t *testing.T) {
	handler := New(newEchoApp(), zaptest.NewLogger(t))

	req := httptest.NewRequest(http.MethodGet, "/items/5?id=9", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	res := w.Result()
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)

	assert.JSONEq(t, `{"id":9}`, string(body))
}

func TestAppHandler_RoundTrip(t *testing.T) {
	want := &router.Response{
		StatusCode: http.StatusTeapot,
		Header:     http.Header{"X-Custom": []string{"yes"}},
		Content:    []byte{0x00, 0x01, 0xfe},
	}

	app := router.DispatcherFunc(func(ctx context.Context, req *router.Request) *router.Response {
		return want
	})

	handler := New(app, zaptest.NewLogger(t))

	req := httptest.NewRequest(http.MethodGet, "/whatever", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	res := w.Result()
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)

	assert.Equal(t, http.StatusTeapot, res.StatusCode)
	assert.Equal(t, "yes", res.Header.Get("X-Custom"))
	assert.Equal(t, "application/octet-stream", res.Header.Get("Content-Type"))
	assert.Equal(t, []byte{0x00, 0x01, 0xfe}, body)
}

func TestAppHandler_ContentLength(t *testing.T) {
	tests := []struct {
		name       string
		length     string
		body       string
		wantStatus int
		wantBody   string
		dispatched bool
	}{
		{name: "malformed", length: "abc", body: "{}", wantStatus: http.StatusBadRequest},
		{name: "negative", length: "-1", body: "{}", wantStatus: http.StatusBadRequest},
		{name: "too large", length: "1073741825", wantStatus: http.StatusInsufficientStorage},
		{name: "short body", length: "10", body: "abc", wantStatus: http.StatusBadRequest},
		{name: "exact read", length: "5", body: "hellogarbage", wantStatus: http.StatusCreated, wantBody: "hello", dispatched: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var dispatched bool
			echo := newEchoApp()
			app := router.DispatcherFunc(func(ctx context.Context, req *router.Request) *router.Response {
				dispatched = true
				return echo.Dispatch(ctx, req)
			})

			handler := New(app, zaptest.NewLogger(t))

			req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(tc.body))
			req.Header.Set("Content-Length", tc.length)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			res := w.Result()
			defer res.Body.Close()

			body, _ := io.ReadAll(res.Body)

			assert.Equal(t, tc.wantStatus, res.StatusCode)
			assert.Equal(t, tc.wantBody, string(body))
			assert.Equal(t, tc.dispatched, dispatched)
		})
	}
}

func TestAppHandler_AbsentContentLength(t *testing.T) {
	var got *router.Request
	app := router.DispatcherFunc(func(ctx context.Context, req *router.Request) *router.Response {
		got = req
		return &router.Response{}
	})

	handler := New(app, zaptest.NewLogger(t))

	req := httptest.NewRequest(http.MethodPost, "/anything", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	require.NotNil(t, got)
	assert.Nil(t, got.Body)
	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
}

func TestAppHandler_NoMatch(t *testing.T) {
	handler := New(newEchoApp(), zaptest.NewLogger(t))

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	res := w.Result()
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Empty(t, body)
	assert.Empty(t, res.Header.Get("Content-Type"))
}

func TestAppHandler_Metrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	handler := New(newEchoApp(), zaptest.NewLogger(t)).WithMetrics(registry)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/1", nil))
	}

	families, err := registry.Gather()
	require.NoError(t, err)

	found := false
	for _, family := range families {
		switch family.GetName() {
		case "manifold_requests_total":
			found = true
			require.Len(t, family.GetMetric(), 1)
			assert.Equal(t, float64(3), family.GetMetric()[0].GetCounter().GetValue())
		}
	}

	assert.True(t, found, "requests counter not registered")
}
