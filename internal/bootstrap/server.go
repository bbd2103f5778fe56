package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/dccbooking/api"
	"github.com/Domenick1991/dccbooking/config"
	"github.com/Domenick1991/dccbooking/internal/logger"
	"github.com/Domenick1991/dccbooking/internal/metrics"
	"github.com/Domenick1991/dccbooking/internal/service/booking"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const swaggerSpec = "/swagger/dccbooking.swagger.json"

// Run serves HTTP on address until ctx is canceled or the server fails.
func Run(ctx context.Context, address string, handler http.Handler, log *zap.Logger) error {
	httpSrv := &http.Server{
		Addr:              address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("address", address))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info("shutting down http server")
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

// NewRouter builds the gin engine with every booking route and the ambient endpoints.
func NewRouter(cfg *config.Config, svc booking.BookingUseCase, m *metrics.Metrics, log *zap.Logger) (*gin.Engine, error) {
	if err := api.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}

	router := gin.New()
	router.Use(logger.RequestLogger(log), gin.Recovery())
	router.Use(cors.New(corsConfig(cfg.HTTP.AllowedOrigins)))
	if m != nil {
		router.Use(m.Middleware())
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.HTTP.SwaggerDir != "" {
		router.Static("/swagger", cfg.HTTP.SwaggerDir)
		router.GET("/docs", func(c *gin.Context) {
			renderSwaggerUI(c.Writer, swaggerSpec)
		})
	}

	sessions := router.Group("/")
	sessions.Use(api.SessionMiddleware(api.SessionOptions{
		CookieName: cfg.Session.CookieName,
		TTL:        cfg.Session.TTL(),
		Secure:     cfg.Session.SecureCookies,
	}))
	api.NewBookingHandler(svc, log).Register(sessions)
	api.NewValidationHandler(svc, log).Register(sessions)

	return router, nil
}

// NewMetricsRouter exposes only /healthz and /metrics, for processes without a public API.
func NewMetricsRouter(m *metrics.Metrics) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))
	return router
}

// corsConfig allows credentialed requests from the demo frontend; no origins means any origin.
func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		c.AllowOriginFunc = func(string) bool { return true }
	} else {
		c.AllowOrigins = origins
	}
	return c
}

func renderSwaggerUI(w http.ResponseWriter, jsonURL string) {
	html := fmt.Sprintf(`<!DOCTYPE html>
    <html>
    <head>
        <title>DCC Booking API Docs</title>
        <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@latest/swagger-ui.css">
    </head>
    <body>
        <div id="swagger-ui"></div>
        <script src="https://unpkg.com/swagger-ui-dist@latest/swagger-ui-bundle.js"></script>
        <script>
            window.onload = function() {
                window.ui = SwaggerUIBundle({
                    url: "%s",
                    dom_id: '#swagger-ui'
                });
            };
        </script>
    </body>
    </html>`, jsonURL)

	w.Header().Set("Content-Type", "text/html")
	w.Write([]byte(html))
}
