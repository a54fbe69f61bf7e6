// Package app wires the task manager runtime and HTTP lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/AkashKarnatak/task-manager-api/internal/api/httpapi"
	authservice "github.com/AkashKarnatak/task-manager-api/internal/auth/service"
	"github.com/AkashKarnatak/task-manager-api/internal/auth/token"
	"github.com/AkashKarnatak/task-manager-api/internal/platform/config"
	"github.com/AkashKarnatak/task-manager-api/internal/storage/sqlite"
	taskservice "github.com/AkashKarnatak/task-manager-api/internal/task/service"
)

type serverEnv struct {
	DBPath    string        `env:"TASK_MANAGER_DB_PATH"`
	JWTSecret string        `env:"TASK_MANAGER_JWT_SECRET"`
	TokenTTL  time.Duration `env:"TASK_MANAGER_TOKEN_TTL" envDefault:"0"`
}

func loadServerEnv() (serverEnv, error) {
	var cfg serverEnv
	if err := config.ParseEnv(&cfg); err != nil {
		return serverEnv{}, err
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = filepath.Join("data", "task-manager.db")
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return serverEnv{}, errors.New("TASK_MANAGER_JWT_SECRET is required")
	}
	return cfg, nil
}

// Server hosts the HTTP API and the storage lifecycle.
type Server struct {
	listener net.Listener
	echo     *echo.Echo
	store    *sqlite.Store
}

// New creates a configured server listening on the provided port.
func New(port int) (*Server, error) {
	return NewWithAddr(fmt.Sprintf(":%d", port))
}

// NewWithAddr creates a configured server for the provided address.
func NewWithAddr(addr string) (*Server, error) {
	env, err := loadServerEnv()
	if err != nil {
		return nil, err
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	store, err := openStore(env.DBPath)
	if err != nil {
		_ = listener.Close()
		return nil, err
	}

	tokens := token.NewService([]byte(env.JWTSecret), env.TokenTTL, store)
	auth := authservice.NewService(store, store, tokens)
	tasks := taskservice.NewService(store)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	httpapi.NewHandler(auth, tasks).Register(e)

	return &Server{
		listener: listener,
		echo:     e,
		store:    store,
	}, nil
}

func openStore(path string) (*sqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir %s: %w", dir, err)
		}
	}
	store, err := sqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open store at %s: %w", path, err)
	}
	return store, nil
}

// Addr returns the listener address for the server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates and serves a server until context cancellation.
func Run(ctx context.Context, port int) error {
	server, err := New(port)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the HTTP server until context cancellation.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	log.Printf("task manager listening at %v", s.listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		s.echo.Listener = s.listener
		serveErr <- s.echo.Start("")
	}()

	handleErr := func(err error) error {
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http: %w", err)
		}
		return handleErr(<-serveErr)
	case err := <-serveErr:
		return handleErr(err)
	}
}

// Close releases the server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("close store: %v", err)
		}
	}
}
