package watch

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	ferrors "git.home.luguber.info/inful/staticrender/internal/foundation/errors"
	"git.home.luguber.info/inful/staticrender/internal/logfields"
	"git.home.luguber.info/inful/staticrender/internal/metrics"
)

// MetricsServer exposes /metrics for a registry while watching.
type MetricsServer struct {
	srv    *http.Server
	ln     net.Listener
	logger *slog.Logger
}

// ListenMetrics binds addr and prepares a server for reg. Use ":0" for an
// ephemeral port; Addr reports the bound address.
func ListenMetrics(addr string, reg *prom.Registry, logger *slog.Logger) (*MetricsServer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryNetwork, "failed to listen for metrics").
			WithContext("addr", addr).Build()
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	return &MetricsServer{
		srv: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		ln:     ln,
		logger: logger,
	}, nil
}

// Addr returns the listening address.
func (m *MetricsServer) Addr() string {
	return m.ln.Addr().String()
}

// Serve blocks until ctx is cancelled, then shuts the server down.
func (m *MetricsServer) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		m.logger.Info("Serving metrics", logfields.Path("http://"+m.Addr()+"/metrics"))
		errCh <- m.srv.Serve(m.ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return ferrors.WrapError(err, ferrors.CategoryNetwork, "metrics server failed").Build()
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.srv.Shutdown(shutdownCtx); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryNetwork, "metrics server shutdown failed").Build()
	}
	return nil
}
