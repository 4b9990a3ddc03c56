package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/JonMunkholm/countries/internal/cli"
	_ "github.com/JonMunkholm/countries/internal/core/views" // Register all views
	"github.com/joho/godotenv"
)

func main() {
	// Optional .env; existing env vars win for the CLI
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCommand(cli.Options{}).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
