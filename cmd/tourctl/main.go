package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/louisbranch/balitours/internal/cmd/tourctl"
	"github.com/louisbranch/balitours/internal/platform/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := tourctl.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		config.Exitf("Error: %v", err)
	}
}
