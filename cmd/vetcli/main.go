package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vetclinic/clinic-system/internal/cli/app"
	"github.com/vetclinic/clinic-system/internal/cli/client"
	"github.com/vetclinic/clinic-system/internal/cli/session"
)

func main() {
	baseURL := flag.String("base-url", "http://localhost:8080", "clinic API base URL")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := session.NewStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "session store: %v\n", err)
		os.Exit(1)
	}

	a := app.New(client.New(*baseURL), store, os.Stdin, os.Stdout)
	if err := a.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
