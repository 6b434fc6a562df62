package server

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/discover/internal/shared"
)

type routedHandler struct {
	routes []string
	body   string
}

func (h *routedHandler) Routes() []string { return h.routes }

func (h *routedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	io.WriteString(w, h.body)
}

func tag(name string, order *[]string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*order = append(*order, name)
			next.ServeHTTP(w, r)
		})
	}
}

func TestBasicRouter(t *testing.T) {
	t.Run("Handle", func(t *testing.T) {
		tests := []struct {
			name   string
			method string
			status int
		}{
			{name: "matching method", method: http.MethodGet, status: http.StatusOK},
			{name: "wrong method", method: http.MethodPost, status: http.StatusMethodNotAllowed},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				router := NewBasicRouter()
				router.Handle(http.MethodGet, "/ping", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					io.WriteString(w, "pong")
				}))

				rec := httptest.NewRecorder()
				router.ServeHTTP(rec, httptest.NewRequest(tt.method, "/ping", nil))

				if rec.Code != tt.status {
					t.Errorf("expected %d, got %d", tt.status, rec.Code)
				}
			})
		}
	})

	t.Run("Handler registers every route", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handler(&routedHandler{routes: []string{"GET /a", "GET /b"}, body: "ok"})

		for _, path := range []string{"/a", "/b"} {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
				t.Errorf("%s: expected 200 ok, got %d %q", path, rec.Code, rec.Body.String())
			}
		}

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/c", nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404 for unregistered path, got %d", rec.Code)
		}
	})

	t.Run("middleware runs in the order added", func(t *testing.T) {
		var order []string
		router := NewBasicRouter()
		router.Use(tag("first", &order), tag("second", &order))
		router.Handle(http.MethodGet, "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "handler")
		}))

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		if got := strings.Join(order, ","); got != "first,second,handler" {
			t.Errorf("expected first,second,handler, got %s", got)
		}
	})
}

func TestRequestLogger(t *testing.T) {
	handler := func(status int) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		})
	}

	t.Run("assigns a request id", func(t *testing.T) {
		var buf bytes.Buffer
		logger := shared.NewLogger(&buf)
		shared.SetLogLevel(logger, log.DebugLevel)

		rec := httptest.NewRecorder()
		RequestLogger(logger)(handler(http.StatusTeapot)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

		id := rec.Header().Get(RequestIDHeader)
		if id == "" {
			t.Fatal("expected X-Request-ID to be set")
		}
		if !strings.Contains(buf.String(), id) {
			t.Errorf("expected log to contain request id, got %q", buf.String())
		}
		if !strings.Contains(buf.String(), "418") {
			t.Errorf("expected log to contain status, got %q", buf.String())
		}
	})

	t.Run("reuses an incoming request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set(RequestIDHeader, "abc-123")

		rec := httptest.NewRecorder()
		RequestLogger(shared.NewLogger(&bytes.Buffer{}))(handler(http.StatusOK)).ServeHTTP(rec, req)

		if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
			t.Errorf("expected abc-123, got %q", got)
		}
	})
}

func TestServe(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, ln, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, "up")
		}), shared.NewLogger(&bytes.Buffer{}))
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != "up" {
		t.Errorf("expected up, got %q", string(body))
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected clean shutdown, got %v", err)
		}
	case <-time.After(ShutdownTimeout + time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
