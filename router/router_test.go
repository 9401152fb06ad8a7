package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/nalgeon/be"
)

type pingOutput struct {
	Body struct {
		Message string `json:"message"`
	}
}

func newTestRouter(t *testing.T, calls *[]string) http.Handler {
	t.Helper()
	return New("Test", "1.0.0",
		func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusServiceUnavailable) },
		func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("up 1\n")) },
		OptUseMiddleware(func(ctx huma.Context, next func(huma.Context)) {
			*calls = append(*calls, ctx.Operation().OperationID)
			next(ctx)
		}),
		OptGroup("/api",
			OptGroup("/ping", func(api huma.API) {
				huma.Get(api, "", func(context.Context, *struct{}) (*pingOutput, error) {
					out := &pingOutput{}
					out.Body.Message = "pong"
					return out, nil
				}, func(o *huma.Operation) { o.OperationID = "ping" })
			}),
		),
	)
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestNew(t *testing.T) {
	var calls []string
	h := newTestRouter(t, &calls)

	t.Run("liveness", func(t *testing.T) {
		be.Equal(t, serve(h, http.MethodGet, "/liveness").Code, http.StatusOK)
	})

	t.Run("readiness", func(t *testing.T) {
		be.Equal(t, serve(h, http.MethodGet, "/readiness").Code, http.StatusServiceUnavailable)
	})

	t.Run("metrics", func(t *testing.T) {
		w := serve(h, http.MethodGet, "/metrics")
		be.Equal(t, w.Code, http.StatusOK)
		be.Equal(t, w.Body.String(), "up 1\n")
	})

	t.Run("grouped operation", func(t *testing.T) {
		w := serve(h, http.MethodGet, "/api/ping")
		be.Equal(t, w.Code, http.StatusOK)
		be.Equal(t, strings.TrimSpace(w.Body.String()), `{"message":"pong"}`)
		be.Equal(t, calls, []string{"ping"})
	})

	t.Run("openapi", func(t *testing.T) {
		be.Equal(t, serve(h, http.MethodGet, "/openapi.json").Code, http.StatusOK)
	})

	for _, target := range []string{"/", "/nope", "/api/pong", "/api/ping/1"} {
		t.Run("unknown "+target, func(t *testing.T) {
			w := serve(h, http.MethodGet, target)
			be.Equal(t, w.Code, http.StatusNotFound)
			be.Equal(t, w.Header().Get("Content-Type"), "application/json")
			be.Equal(t, w.Body.String(), `{"error":"unknown endpoint"}`+"\n")
		})
	}

	t.Run("unknown method", func(t *testing.T) {
		be.Equal(t, serve(h, http.MethodPost, "/liveness").Code, http.StatusNotFound)
	})
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })

	request := func(method, origin string, headers ...string) *http.Request {
		r := httptest.NewRequest(method, "/api/persons", nil)
		if origin != "" {
			r.Header.Set("Origin", origin)
		}
		for i := 0; i+1 < len(headers); i += 2 {
			r.Header.Set(headers[i], headers[i+1])
		}
		return r
	}
	serveRequest := func(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w
	}

	t.Run("disabled", func(t *testing.T) {
		w := serveRequest(CORS("", next), request(http.MethodGet, "http://localhost:5173"))
		be.Equal(t, w.Code, http.StatusTeapot)
		be.Equal(t, w.Header().Get("Access-Control-Allow-Origin"), "")
	})

	t.Run("simple request", func(t *testing.T) {
		w := serveRequest(CORS("*", next), request(http.MethodGet, "http://localhost:5173"))
		be.Equal(t, w.Code, http.StatusTeapot)
		be.Equal(t, w.Header().Get("Access-Control-Allow-Origin"), "*")
	})

	t.Run("preflight", func(t *testing.T) {
		w := serveRequest(CORS("http://localhost:5173", next), request(http.MethodOptions, "http://localhost:5173",
			"Access-Control-Request-Method", http.MethodPut,
			"Access-Control-Request-Headers", "content-type",
		))
		be.Equal(t, w.Code, http.StatusNoContent)
		be.Equal(t, w.Header().Get("Access-Control-Allow-Origin"), "http://localhost:5173")
		be.Equal(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPut)
		be.True(t, strings.EqualFold(w.Header().Get("Access-Control-Allow-Headers"), "content-type"))
		be.True(t, strings.Contains(strings.Join(w.Header().Values("Vary"), ","), "Origin"))
	})

	t.Run("preflight from another origin", func(t *testing.T) {
		w := serveRequest(CORS("http://localhost:5173", next), request(http.MethodOptions, "http://evil.example",
			"Access-Control-Request-Method", http.MethodDelete,
		))
		be.Equal(t, w.Header().Get("Access-Control-Allow-Origin"), "")
	})

	t.Run("plain options", func(t *testing.T) {
		w := serveRequest(CORS("*", next), request(http.MethodOptions, ""))
		be.Equal(t, w.Code, http.StatusTeapot)
	})
}
