package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"work-timer/internal/cli"
	"work-timer/internal/domain"
)

func main() {
	clock := domain.SystemClock{}
	root := cli.NewRootCommand(cli.DefaultFactory(clock), clock, os.Stdout, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
