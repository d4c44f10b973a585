package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.eigsys.de/gin-cachecontrol/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type ctxKey string

const (
	requestIDKey    ctxKey = "request_id"
	requestIDHeader        = "X-Request-Id"
	passwordHeader         = "X-Game-Password"
)

// RequestID returns the request id stored by the API middleware, if any
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// getLimiter returns a rate limiter for the given key (usually client IP).
func (s *Server) getLimiter(key string) *rate.Limiter {
	s.limiterMu.Lock()
	defer s.limiterMu.Unlock()
	if lim, ok := s.limiters[key]; ok {
		return lim
	}

	rps := s.cfg.RateLimitRPS
	if rps <= 0 {
		rps = 1
	}
	burst := s.cfg.RateLimitBurst
	if burst <= 0 {
		burst = 1
	}
	lim := rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), burst)
	s.limiters[key] = lim
	return lim
}

// rateLimitMiddleware enforces per-client rate limiting
func (s *Server) rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.getLimiter(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please slow down."})
			return
		}
		c.Next()
	}
}

// passwordMiddleware rejects requests without the game password when one is set
func (s *Server) passwordMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.players.PasswordRequired() && !s.players.CheckPassword(c.GetHeader(passwordHeader)) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid game password"})
			return
		}
		c.Next()
	}
}

// requestIDMiddleware injects a request ID into the context for each request.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.Request.Header.Get(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		ctx := context.WithValue(c.Request.Context(), requestIDKey, reqID)
		c.Request = c.Request.WithContext(ctx)
		c.Header(requestIDHeader, reqID)
		c.Next()
	}
}

func (s *Server) logMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("HTTP request",
			zap.String("request_id", RequestID(c.Request.Context())),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// Player data changes with every submission
func noStoreMiddleware() gin.HandlerFunc {
	return cachecontrol.New(cachecontrol.Config{
		NoStore:        true,
		NoCache:        true,
		MustRevalidate: true,
	})
}
