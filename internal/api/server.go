package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"prefixle/internal/domain"
	"prefixle/internal/service"

	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Players is the part of the auth service the API needs
type Players interface {
	PasswordRequired() bool
	CheckPassword(password string) bool
	EnsurePlayer(userID int64, username string) error
}

// Puzzles is the part of the puzzle service the API needs
type Puzzles interface {
	SubmitWord(ctx context.Context, userID int64, raw string) service.SubmitResult
	Progress(ctx context.Context, userID int64) domain.Progress
	FoundWords(ctx context.Context, userID int64) []domain.ScoredWord
}

// Config holds HTTP API settings
type Config struct {
	Addr           string
	RateLimitRPS   int
	RateLimitBurst int
}

// Server is the JSON API over the puzzle service
type Server struct {
	players Players
	puzzles Puzzles
	cfg     Config
	logger  *zap.Logger

	limiterMu sync.Mutex
	limiters  map[string]*rate.Limiter
}

// NewServer creates a new API server
func NewServer(cfg Config, players Players, puzzles Puzzles, logger *zap.Logger) *Server {
	return &Server{
		players:  players,
		puzzles:  puzzles,
		cfg:      cfg,
		logger:   logger,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Router builds the gin engine with all routes
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestIDMiddleware(), s.logMiddleware())
	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression))

	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		s.logger.Warn("Failed to set trusted proxies", zap.Error(err))
	}

	router.GET("/healthz", s.handleHealth)

	players := router.Group("/api/players/:id", noStoreMiddleware(), s.rateLimitMiddleware(), s.passwordMiddleware())
	players.GET("/progress", s.handleProgress)
	players.GET("/words", s.handleWords)
	players.POST("/words", s.handleSubmit)

	return router
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP API listening", zap.String("addr", s.cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("HTTP API shutdown", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP API stopped")
	return nil
}
