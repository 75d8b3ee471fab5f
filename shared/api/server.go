// shared/api/server.go
package api

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

type BaseServer struct {
	Router *mux.Router
	Server *http.Server
	Logger *log.Logger
}

// NewBaseServer builds a router wrapped in the common middleware.
// Middleware wraps the router rather than being registered with Router.Use so that
// preflight requests and unmatched routes get CORS headers and are logged too.
func NewBaseServer(addr string, logger *log.Logger) *BaseServer {
	if logger == nil {
		logger = log.Default()
	}

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, fmt.Sprintf("Cannot %s %s", r.Method, r.URL.Path))
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, fmt.Sprintf("Method %s not allowed on %s", r.Method, r.URL.Path))
	})

	var handler http.Handler = router
	handler = CORSMiddleware(handler)
	handler = LoggingMiddleware(logger)(handler)

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &BaseServer{
		Router: router,
		Server: server,
		Logger: logger,
	}
}

// Listen binds the server address. Bind failures surface here, before any request is served.
func (bs *BaseServer) Listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", bs.Server.Addr)
	if err != nil {
		return nil, fmt.Errorf("HTTP server failed to listen on %s: %w", bs.Server.Addr, err)
	}
	return ln, nil
}

// Serve accepts connections on ln until Shutdown is called.
func (bs *BaseServer) Serve(ln net.Listener) error {
	bs.Logger.Printf("Serving HTTP on %s...", ln.Addr())
	// Serve returns http.ErrServerClosed on graceful shutdown
	if err := bs.Server.Serve(ln); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server failed: %w", err)
	}
	return nil
}

// Start binds and serves in one call.
func (bs *BaseServer) Start() error {
	ln, err := bs.Listen()
	if err != nil {
		return err
	}
	return bs.Serve(ln)
}

func (bs *BaseServer) Shutdown(ctx context.Context) error {
	bs.Logger.Println("Shutting down HTTP server...")
	return bs.Server.Shutdown(ctx)
}
