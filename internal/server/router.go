package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"solarapi/internal/bodies"
	"solarapi/pkg/utils"
)

const WelcomeMessage = "Welcome to the Solar API!"

// Pinger reports store health for /ready.
type Pinger interface {
	Ping(ctx context.Context) error
}

type RouterOptions struct {
	CORS utils.CORSConfig
	// StoreName is reported by /health.
	StoreName string
	Pinger    Pinger
}

// NewRouter builds the gin engine serving the catalog.
func NewRouter(h *bodies.Handler, opts RouterOptions) *gin.Engine {
	router := gin.New()
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	router.Use(
		RequestID(),
		RequestLogger(nil),
		gin.Recovery(),
		CORS(opts.CORS),
	)

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, WelcomeMessage)
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "store": opts.StoreName})
	})

	router.GET("/ready", func(c *gin.Context) {
		if opts.Pinger == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ready"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := opts.Pinger.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "store": opts.StoreName})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "store": opts.StoreName})
	})

	h.RegisterRoutes(router.Group("/api"))
	h.RegisterLegacyRoutes(router.Group(""))

	return router
}

// HTTPServer wraps http.Server with the configured address.
type HTTPServer struct {
	srv *http.Server
}

func NewHTTPServer(addr string, handler http.Handler) *HTTPServer {
	return &HTTPServer{srv: &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}}
}

func (s *HTTPServer) Addr() string { return s.srv.Addr }

// Start blocks until the server stops; it returns http.ErrServerClosed after
// Shutdown.
func (s *HTTPServer) Start() error { return s.srv.ListenAndServe() }

func (s *HTTPServer) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }
