package fixture

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/studiowebux/postboard/internal/types"
)

// Server serves a read-only posts collection
type Server struct {
	posts      []types.Post
	collection string
	delay      time.Duration
	httpServer *http.Server
	listener   net.Listener
}

// Option configures a Server
type Option func(*Server)

// WithCollection changes the collection path segment (default "posts")
func WithCollection(name string) Option {
	return func(s *Server) { s.collection = name }
}

// WithDelay delays every response
func WithDelay(d time.Duration) Option {
	return func(s *Server) { s.delay = d }
}

// NewServer creates a fixture server over posts
func NewServer(posts []types.Post, opts ...Option) *Server {
	s := &Server{
		posts:      posts,
		collection: "posts",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the gin engine; usable directly with httptest
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(requestLogger())
	engine.Use(gin.CustomRecovery(handlePanics))

	group := engine.Group("/" + s.collection)
	group.GET("", s.listPosts)
	group.GET("/:id", s.getPost)

	return engine
}

// Start binds addr and serves in the background. Bind errors such as an
// address already in use are returned to the caller.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	s.listener = ln
	s.httpServer = &http.Server{
		Addr:    ln.Addr().String(),
		Handler: s.Handler(),
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Str("addr", ln.Addr().String()).Msg("Fixture server error")
		}
	}()

	return nil
}

// Addr returns the bound address, or "" before Start
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop shuts the server down
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) listPosts(c *gin.Context) {
	s.wait(c)
	c.JSON(http.StatusOK, s.posts)
}

func (s *Server) getPost(c *gin.Context) {
	s.wait(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{})
		return
	}

	for _, p := range s.posts {
		if p.ID == id {
			c.JSON(http.StatusOK, p)
			return
		}
	}

	// The demo API answers unknown ids with 404 and an empty object
	c.JSON(http.StatusNotFound, gin.H{})
}

func (s *Server) wait(c *gin.Context) {
	if s.delay <= 0 {
		return
	}
	select {
	case <-time.After(s.delay):
	case <-c.Request.Context().Done():
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("Fixture request")
	}
}

func handlePanics(c *gin.Context, recovered any) {
	msg := "internal server error"
	if err, ok := recovered.(error); ok {
		msg = err.Error()
	}
	log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("Fixture handler panicked")
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": msg})
}
