package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/AkashKarnatak/task-manager-api/internal/app"
	"github.com/AkashKarnatak/task-manager-api/internal/platform/otel"
)

var (
	port = flag.Int("port", 8080, "The server port")
)

func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Setup(ctx, "task-manager")
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(context.Background())

	if err := app.Run(ctx, *port); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
