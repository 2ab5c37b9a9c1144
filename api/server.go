package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/localized-blog-backend/config"
	"github.com/rpupo63/localized-blog-backend/database"
	"github.com/rpupo63/localized-blog-backend/locale"
	"github.com/rs/zerolog/log"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(database database.Database, c map[string]string, resolver *locale.Resolver) (Server, error) {
	if resolver == nil {
		return Server{}, errors.New("locale resolver is required")
	}

	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	startupTime := time.Now()

	router := newRouter(database, resolver, withConfig(c), withStartupTime(startupTime))

	readTimeout := time.Duration(config.GetInt(c, "READ_TIMEOUT_SECONDS", 180)) * time.Second
	writeTimeout := time.Duration(config.GetInt(c, "WRITE_TIMEOUT_SECONDS", 180)) * time.Second
	idleTimeout := time.Duration(config.GetInt(c, "IDLE_TIMEOUT_SECONDS", 180)) * time.Second

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,  // Timeout for reading the entire request
		WriteTimeout: writeTimeout, // Timeout for writing the response
		IdleTimeout:  idleTimeout,  // Timeout for idle connections
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(database database.Database, resolver *locale.Resolver, opts ...func(*router)) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)

	acceptedOrigins := config.GetStrings(router.config, "ACCEPTED_ORIGINS")
	chiRouter.Use(CORSCheckMiddleware(acceptedOrigins))
	chiRouter.Use(corsMiddleware(acceptedOrigins))
	if config.GetBool(router.config, "LOG_REQUESTS", true) {
		chiRouter.Use(ColoredHTTPLoggingMiddleware)
	}

	handlers := initializeHandlers(database, resolver.Default())
	authMiddleware := newAuthMiddleware(config.GetString(router.config, "BACKEND_PASSWORD", ""))

	chiRouter.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		NewResponder(log.Logger).WriteJSON(w, map[string]interface{}{
			"status":  "ok",
			"uptime":  time.Since(router.startupTime).Round(time.Second).String(),
			"locales": resolver.Supported(),
		})
	})
	setupPublicRoutes(chiRouter, handlers, resolver)
	setupAdminRoutes(chiRouter, handlers, authMiddleware)

	return chiRouter
}

// Start serves until the server is shut down; a graceful shutdown is not reported as an error.
func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		errChannel <- err
		return
	}
	errChannel <- nil
}

func (s Server) ShutdownGracefully(timeout time.Duration) error {
	log.Info().Msg("Gracefully shutting down...")

	gracefulCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefulCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
		return err
	}
	log.Info().Msg("HttpServer gracefully shut down")
	return nil
}
