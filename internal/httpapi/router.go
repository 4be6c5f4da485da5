// Package httpapi exposes the search service over HTTP.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"docrank/internal/domain"
)

// SessionHeader carries the upload-pool session id in both directions.
const SessionHeader = "X-Session-ID"

const sessionKey = "session"

// Options tunes the router.
type Options struct {
	// RateLimitRPS of 0 disables rate limiting.
	RateLimitRPS float64
	RateBurst    int
	// MaxBodyBytes of 0 leaves request bodies unbounded.
	MaxBodyBytes int64
	Logger       *slog.Logger
}

// NewRouter wires every route onto a fresh gin engine.
func NewRouter(svc domain.SearchService, opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{svc: svc, log: logger}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger), allowCORS())
	if opts.RateLimitRPS > 0 {
		burst := opts.RateBurst
		if burst <= 0 {
			burst = 1
		}
		r.Use(rateLimit(rate.NewLimiter(rate.Limit(opts.RateLimitRPS), burst)))
	}
	if opts.MaxBodyBytes > 0 {
		r.Use(limitBody(opts.MaxBodyBytes))
	}

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/documents", h.ListDocuments)

	session := r.Group("/", withSession())
	session.POST("/search", h.Search)
	session.POST("/uploads", h.CreateUpload)
	session.GET("/uploads", h.ListUploads)
	session.DELETE("/uploads/:id", h.DeleteUpload)
	return r
}

// withSession reads the session id, minting one when the client has none, and
// echoes it back so the client can keep using its upload pool.
func withSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(SessionHeader, id)
		c.Set(sessionKey, id)
		c.Next()
	}
}

func rateLimit(limiter *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}

// allowCORS lets a browser front end on another origin call the API.
func allowCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Content-Type, "+SessionHeader)
		c.Header("Access-Control-Expose-Headers", SessionHeader)
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"took", time.Since(start),
		)
	}
}
