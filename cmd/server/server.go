package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/JaimeStill/iris/internal/config"
	"github.com/JaimeStill/iris/internal/infrastructure"
)

// Server owns the infrastructure, the mounted modules and the HTTP listener.
type Server struct {
	infra   *infrastructure.Infrastructure
	modules *Modules
	http    *http.Server
	drain   time.Duration
}

func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, fmt.Errorf("modules init failed: %w", err)
	}

	router := buildRouter(infra)
	modules.Mount(router)

	s := &Server{
		infra:   infra,
		modules: modules,
		http: &http.Server{
			Addr:         cfg.Server.Addr(),
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
			WriteTimeout: cfg.Server.WriteTimeoutDuration(),
		},
		drain: cfg.Server.ShutdownTimeoutDuration(),
	}

	infra.Logger.Info("server initialized", "addr", s.http.Addr, "version", cfg.Version)
	return s, nil
}

// Start runs the subsystem startup hooks and begins serving. Readiness is
// reported once every hook has returned; the listener accepts traffic
// immediately so /readyz can answer 503 in the meantime.
func (s *Server) Start() error {
	log := s.infra.Logger.With("system", "http")

	if err := s.infra.Start(); err != nil {
		return err
	}

	go func() {
		log.Info("server listening", "addr", s.http.Addr)
		err := s.http.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("listener stopped", "error", err)
		}
	}()

	lc := s.infra.Lifecycle
	lc.OnShutdown(func() {
		<-lc.Context().Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.drain)
		defer cancel()

		if err := s.http.Shutdown(ctx); err != nil {
			log.Error("http drain incomplete", "error", err)
			return
		}
		log.Info("http server stopped")
	})

	go func() {
		if err := lc.WaitForStartup(); err != nil {
			s.infra.Logger.Error("subsystem startup failed", "error", err)
			return
		}
		s.infra.Logger.Info("all subsystems ready")
	}()

	return nil
}

func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}
