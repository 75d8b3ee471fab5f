package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestServer(t *testing.T) (*BaseServer, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	bs := NewBaseServer(":0", log.New(&buf, "", 0))
	bs.Router.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		_ = WriteText(w, http.StatusOK, "pong")
	}).Methods(http.MethodGet)
	return bs, &buf
}

func TestBaseServerPreflight(t *testing.T) {
	bs, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	rec := httptest.NewRecorder()
	bs.Server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected allow origin *, got %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, "PUT") {
		t.Fatalf("expected PUT in allowed methods, got %q", got)
	}
}

func TestBaseServerRequestID(t *testing.T) {
	bs, buf := newTestServer(t)

	rec := httptest.NewRecorder()
	bs.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	generated := rec.Header().Get(RequestIDHeader)
	if generated == "" {
		t.Fatal("expected generated request id")
	}
	if !strings.Contains(buf.String(), generated) {
		t.Fatalf("expected request id in log, got %q", buf.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	bs.Server.Handler.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Fatalf("expected echoed request id, got %q", got)
	}
}

func TestBaseServerUnmatchedRoutes(t *testing.T) {
	bs, buf := newTestServer(t)

	tests := []struct {
		method string
		path   string
		status int
	}{
		{method: http.MethodGet, path: "/missing", status: http.StatusNotFound},
		{method: http.MethodDelete, path: "/ping", status: http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		bs.Server.Handler.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		if rec.Code != tt.status {
			t.Fatalf("%s %s: expected %d, got %d", tt.method, tt.path, tt.status, rec.Code)
		}
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Fatalf("%s %s: expected CORS header, got %q", tt.method, tt.path, got)
		}
	}
	if !strings.Contains(buf.String(), "Status: 405") {
		t.Fatalf("expected 405 to be logged, got %q", buf.String())
	}
}

func TestBaseServerListenAddressInUse(t *testing.T) {
	taken, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer taken.Close()
	addr := fmt.Sprintf(":%d", taken.Addr().(*net.TCPAddr).Port)

	bs := NewBaseServer(addr, log.New(io.Discard, "", 0))
	if _, err := bs.Listen(); err == nil || !strings.Contains(err.Error(), "failed to listen") {
		t.Fatalf("expected listen error, got %v", err)
	}
	if err := bs.Start(); err == nil {
		t.Fatal("expected Start to fail on a taken address")
	}
}

func TestBaseServerServeAndShutdown(t *testing.T) {
	bs, _ := newTestServer(t)
	bs.Server.Addr = "127.0.0.1:0"

	ln, err := bs.Listen()
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	served := make(chan error, 1)
	go func() { served <- bs.Serve(ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/ping")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	if err := bs.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if err := <-served; err != nil {
		t.Fatalf("expected clean stop after shutdown, got %v", err)
	}
}
