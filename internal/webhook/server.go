// Package webhook serves the HTTP endpoints: a health check and the issue
// tracker webhook that announces closed issues in chat.
package webhook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/meadtools/meadbot/internal/logging"
)

const (
	// HealthMessage is the body of GET /.
	HealthMessage = "Github issues bot!"
	// WebhookPath is the route receiving tracker webhook deliveries.
	WebhookPath = "/github-webhook"

	shutdownTimeout = 5 * time.Second
)

// Server is the HTTP front of the bot.
type Server struct {
	logger  *slog.Logger
	addr    string
	handler *Handler
	engine  *gin.Engine
}

// NewServer builds a Server listening on addr once Serve is called.
func NewServer(logger *slog.Logger, addr string, handler *Handler) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	engine := gin.New()
	engine.Use(
		gin.LoggerWithWriter(logging.NewWriter(logger, "gin", logging.LevelDebug)),
		gin.RecoveryWithWriter(logging.NewWriter(logger, "gin", logging.LevelError)),
	)
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, HealthMessage)
	})
	engine.POST(WebhookPath, handler.Handle)

	return &Server{logger: logger, addr: addr, handler: handler, engine: engine}
}

// Handler returns the routed http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Serve listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("webhook server listening", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen on %s: %w", s.addr, err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown webhook server: %w", err)
		}
		s.logger.Info("webhook server stopped")
		return nil
	}
}
