package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	"solarapi/internal/app"
	"solarapi/internal/bodies"
	"solarapi/internal/server"
	"solarapi/pkg/utils"
)

func main() {
	application := fx.New(
		fx.NopLogger,
		fx.Provide(
			newConfig,
			newBackend,
			newService,
			newHandler,
			newRouter,
			newHTTPServer,
		),
		fx.Invoke(registerServerHooks),
	)

	if err := application.Err(); err != nil {
		grip.Emergency(message.WrapError(err, message.Fields{"message": "api-server failed to build"}))
		os.Exit(1)
	}

	// Run blocks until SIGINT/SIGTERM and then runs the stop hooks.
	application.Run()
}

func newConfig() (utils.Config, error) {
	cfg, err := utils.LoadConfig()
	if err != nil {
		return utils.Config{}, err
	}
	if err := utils.SetupLogging("solar-api", cfg.LogLevel); err != nil {
		return utils.Config{}, err
	}
	gin.SetMode(gin.ReleaseMode)
	return cfg, nil
}

func newBackend(lc fx.Lifecycle, cfg utils.Config) (*app.Backend, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Store.ConnectTimeout*time.Duration(cfg.Store.ConnectRetries+1))
	defer cancel()

	backend, err := app.OpenBackend(ctx, cfg.Store)
	if err != nil {
		return nil, errors.Wrap(err, "opening store")
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			grip.Info(message.Fields{"message": "closing store", "store": backend.Name})
			return backend.Close(ctx)
		},
	})
	return backend, nil
}

func newService(cfg utils.Config, backend *app.Backend) *bodies.Service {
	return bodies.NewService(backend.Store, app.ServiceOptions(cfg.Query))
}

func newHandler(svc *bodies.Service) *bodies.Handler {
	return bodies.NewHandler(svc)
}

func newRouter(cfg utils.Config, backend *app.Backend, svc *bodies.Service, h *bodies.Handler) *gin.Engine {
	return server.NewRouter(h, server.RouterOptions{
		CORS:      cfg.CORS,
		StoreName: backend.Name,
		Pinger:    svc,
	})
}

func newHTTPServer(cfg utils.Config, router *gin.Engine) *server.HTTPServer {
	return server.NewHTTPServer(cfg.Addr(), router)
}

func registerServerHooks(lc fx.Lifecycle, shutdowner fx.Shutdowner, srv *server.HTTPServer) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				grip.Info(message.Fields{"message": "HTTP API server listening", "addr": srv.Addr()})
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					grip.Error(message.WrapError(err, message.Fields{"message": "HTTP server failed"}))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			grip.Info("shutting down HTTP server")
			return srv.Shutdown(shutdownCtx)
		},
	})
}
