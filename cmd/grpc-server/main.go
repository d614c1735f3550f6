package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"

	"solarapi/internal/app"
	"solarapi/internal/bodies"
	"solarapi/internal/grpcserver"
	"solarapi/pkg/utils"
)

func main() {
	cfg, err := utils.LoadConfig()
	if err != nil {
		fatal(err, "loading config")
	}
	if err := utils.SetupLogging("solar-grpc", cfg.LogLevel); err != nil {
		fatal(err, "setting up logging")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Store.ConnectTimeout*time.Duration(cfg.Store.ConnectRetries+1))
	backend, err := app.OpenBackend(ctx, cfg.Store)
	cancel()
	if err != nil {
		fatal(err, "opening store")
	}
	defer backend.Close(context.Background())

	listener, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		fatal(err, "grpc listen failed")
	}

	svc := bodies.NewService(backend.Store, app.ServiceOptions(cfg.Query))
	grpcServer := grpcserver.New(svc)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		grip.Info(message.Fields{"message": "shutdown signal received", "signal": sig.String()})
		grpcServer.GracefulStop()
	}()

	grip.Info(message.Fields{"message": "gRPC server listening", "addr": cfg.GRPCAddr, "store": backend.Name})
	if err := grpcServer.Serve(listener); err != nil {
		fatal(err, "grpc server stopped")
	}
}

func fatal(err error, msg string) {
	grip.Emergency(message.WrapError(err, message.Fields{"message": msg}))
	os.Exit(1)
}
