package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/pasogott/gurkerlcli/internal/cli"
	"github.com/pasogott/gurkerlcli/pkg/config"
)

func main() {
	// A local .env is optional, credentials may come from the keyring.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "gurkerlcli: %v\n", err)
		os.Exit(1)
	}

	app := cli.NewApp(cfg, os.Stdin, os.Stdout, os.Stderr)
	os.Exit(app.Execute(context.Background(), os.Args[1:]))
}
