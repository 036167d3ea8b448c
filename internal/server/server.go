// Package server assembles the gin engine: middleware, the API route group
// and the store the handlers share.
package server

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/heyyrintu/mis-lifelong/internal/api"
	"github.com/heyyrintu/mis-lifelong/internal/config"
	"github.com/heyyrintu/mis-lifelong/internal/logger"
	"github.com/heyyrintu/mis-lifelong/internal/store"
)

// Server is the HTTP server.
type Server struct {
	router   *gin.Engine
	store    *store.Store
	handlers *api.Handlers
}

// NewServer builds the server from the given config.
func NewServer(cfg *config.AppConfig) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	st := store.New()
	handlers := api.NewHandlers(st, cfg)

	router := gin.New()
	router.Use(requestLogger(), recovery(), cors())

	s := &Server{
		router:   router,
		store:    st,
		handlers: handlers,
	}

	group := router.Group("/api")
	handlers.RegisterRoutes(group)

	return s
}

// Run starts the listener and blocks.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Router exposes the engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Store exposes the session store for tests.
func (s *Server) Store() *store.Store {
	return s.store
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	log := logger.Component("http")
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		log.Info().
			Str("method", c.Request.Method).
			Str("path", path).
			Str("ip", c.ClientIP()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

func recovery() gin.HandlerFunc {
	log := logger.Component("http")
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Interface("error", err).
					Str("path", c.Request.URL.Path).
					Msg("recovered from panic")
				c.AbortWithStatus(500)
			}
		}()
		c.Next()
	}
}
