package httpapp

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/ozzus/flypy/internal/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

type HTTPApp struct {
	log             *zap.Logger
	server          *http.Server
	addr            string
	shutdownTimeout time.Duration
}

// New builds the server and lets register attach routes to a fresh mux.
// requests may be nil when metrics are disabled.
func New(log *zap.Logger, cfg config.HTTPConfig, requests *prometheus.CounterVec, register func(*http.ServeMux)) *HTTPApp {
	if log == nil {
		log = zap.NewNop()
	}

	mux := http.NewServeMux()
	register(mux)

	var handler http.Handler = mux
	handler = metricsMiddleware(requests, handler)
	handler = loggingMiddleware(log, handler)
	handler = recoveryMiddleware(log, handler)
	handler = corsMiddleware(cfg.AllowedOrigins).Handler(handler)

	addr := cfg.Address()
	return &HTTPApp{
		log: log,
		server: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		addr:            addr,
		shutdownTimeout: cfg.ShutdownTimeout,
	}
}

func (a *HTTPApp) Handler() http.Handler {
	return a.server.Handler
}

func (a *HTTPApp) Run() error {
	const op = "httpapp.Run"

	l, err := net.Listen("tcp", a.addr)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	a.log.Info("http server started", zap.String("addr", l.Addr().String()))

	if err := a.server.Serve(l); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (a *HTTPApp) Stop() {
	a.log.Info("stopping http server", zap.String("addr", a.addr))

	timeout := a.shutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.log.Error("http shutdown error", zap.Error(err))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func corsMiddleware(allowedOrigins []string) *cors.Cors {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
}

func loggingMiddleware(log *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		}
		if rec.status >= http.StatusInternalServerError {
			log.Error("http request failed", fields...)
			return
		}
		log.Info("http request", fields...)
	})
}

func recoveryMiddleware(log *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				log.Error("panic recovered", zap.Any("panic", v), zap.String("path", r.URL.Path))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":"internal error"}`))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// metricsMiddleware labels by the registered pattern rather than the raw path
// so unknown paths do not grow the label set.
func metricsMiddleware(requests *prometheus.CounterVec, next http.Handler) http.Handler {
	if requests == nil {
		return next
	}
	mux, _ := next.(*http.ServeMux)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		path := r.URL.Path
		if mux != nil {
			_, pattern := mux.Handler(r)
			if pattern == "" {
				pattern = "unmatched"
			}
			path = pattern
		}
		requests.WithLabelValues(path, strconv.Itoa(rec.status)).Inc()
	})
}
