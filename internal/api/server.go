package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/UnknownOlympus/roadbook/internal/metrics"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with the middleware chain and API routes.
func NewRouter(log *slog.Logger, m *metrics.Metrics, handler *Handler) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), Recovery(log), AccessLog(log), Instrument(m))

	handler.RegisterRoutes(router)

	return router
}

// NewServer wraps the router in an HTTP server. The write timeout leaves room for a
// provider call on a cache miss.
func NewServer(port int, handler http.Handler, providerTimeout time.Duration) *http.Server {
	const (
		readTimeout = 5 * time.Second
		slack       = 5 * time.Second
	)

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           handler,
		ReadHeaderTimeout: readTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      providerTimeout + slack,
	}
}
