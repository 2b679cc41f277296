// Package profiler exposes net/http/pprof on a loopback port while the board
// is running.
package profiler

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/rs/zerolog"
)

// startGrace is how long Start waits for Serve to fail before assuming the
// listener is healthy.
const startGrace = 100 * time.Millisecond

type Server struct {
	srv    *http.Server
	ln     net.Listener
	addr   string
	logger zerolog.Logger
}

// New creates a profiler bound to 127.0.0.1:port. Port 0 picks a free port.
func New(port int, logger zerolog.Logger) *Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return &Server{
		srv: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		addr:   fmt.Sprintf("127.0.0.1:%d", port),
		logger: logger,
	}
}

// Start begins serving in the background.
func (s *Server) Start(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	s.ln = ln

	s.logger.Info().Str("addr", ln.Addr().String()).Msg("starting profiler")

	errCh := make(chan error, 1)
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve profiler: %w", err)
	case <-time.After(startGrace):
		return nil
	}
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("stopping profiler")
	return s.srv.Shutdown(ctx)
}
