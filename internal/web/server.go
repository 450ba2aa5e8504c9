// Package web hosts the browser-facing HTTP server: page rendering, form
// handling, and the cookie-backed session layer.
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/beanhall/beanhall/internal/account"
)

// Config defines the inputs for the web server.
type Config struct {
	HTTPAddr   string
	AppName    string
	SessionTTL time.Duration
}

// Server hosts the site's HTTP server.
type Server struct {
	httpAddr   string
	httpServer *http.Server
}

// handler owns per-request state lookup and store access for all routes.
type handler struct {
	config   Config
	accounts *account.Service
	sessions *sessionStore
}

// NewHandler builds the HTTP handler for the site.
func NewHandler(config Config, accounts *account.Service) (http.Handler, error) {
	if accounts == nil {
		return nil, errors.New("account service is required")
	}

	appName := strings.TrimSpace(config.AppName)
	if appName == "" {
		appName = "Beanhall"
	}
	config.AppName = appName

	h := &handler{
		config:   config,
		accounts: accounts,
		sessions: newSessionStore(config.SessionTTL),
	}

	staticFS, err := subStaticFS()
	if err != nil {
		return nil, fmt.Errorf("resolve static assets: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	mux.HandleFunc("GET /{$}", h.handleHome)
	mux.HandleFunc("GET /catalog", h.handleCatalog)
	mux.HandleFunc("GET /about", h.handleAbout)
	mux.HandleFunc("GET /login", h.handleLoginPage)
	mux.HandleFunc("POST /login", h.handleLoginSubmit)
	mux.HandleFunc("GET /register", h.handleRegisterPage)
	mux.HandleFunc("POST /register", h.handleRegisterSubmit)
	mux.HandleFunc("GET /logout", h.handleLogout)
	mux.HandleFunc("GET /coffee", h.handleCoffee)
	mux.HandleFunc("GET /hello/{name}", h.handleHello)
	mux.HandleFunc("GET /up", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return mux, nil
}

// NewServer builds a configured web server.
func NewServer(config Config, accounts *account.Service) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}

	handler, err := NewHandler(config, accounts)
	if err != nil {
		return nil, err
	}

	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		httpAddr:   httpAddr,
		httpServer: httpServer,
	}, nil
}

// ListenAndServe runs the HTTP server until the context ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	serveErr := make(chan error, 1)
	log.Printf("web listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}
