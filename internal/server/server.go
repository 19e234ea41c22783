package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danmuck/cecscope/internal/cec"
	"github.com/danmuck/cecscope/internal/observability"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Name          string
	CorsOrigins   []string
	MaxFrameBytes int
	MaxBatch      int

	// Logger defaults to the global zerolog logger.
	Logger *zerolog.Logger
}

// Server exposes the frame decoder over HTTP and a websocket stream.
type Server struct {
	Name     string    `json:"name"`
	Appeared time.Time `json:"appeared"`

	opts     Options
	decoder  cec.Decoder
	router   *gin.Engine
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

func New(opts Options) *Server {
	observability.RegisterMetrics()
	if opts.Name == "" {
		opts.Name = "cecscope"
	}
	if opts.MaxFrameBytes <= 0 {
		opts.MaxFrameBytes = 64
	}
	if opts.MaxBatch <= 0 {
		opts.MaxBatch = 256
	}
	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	origins := normalizeOrigins(opts.CorsOrigins)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.Instrument(opts.Name, logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	s := &Server{
		Name:     opts.Name,
		Appeared: time.Now(),
		opts:     opts,
		decoder:  cec.Decoder{Observer: observability.DecoderMetrics{Node: opts.Name}},
		router:   r,
		logger:   logger,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     originChecker(origins),
	}
	s.registerRoutes()
	return s
}

func (s *Server) HTTPRouter() *gin.Engine {
	return s.router
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info().Str("node", s.Name).Str("addr", addr).Msg("server listening")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info().Str("node", s.Name).Msg("server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func normalizeOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}

// originChecker accepts websocket upgrades without an Origin header and from
// the configured CORS origins.
func originChecker(origins []string) func(r *http.Request) bool {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}
}
