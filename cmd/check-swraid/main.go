package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hwameistor/check-swraid/pkg/check-swraid/cmdparser"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cmdparser.Execute(ctx)
	stop()
	os.Exit(code)
}
