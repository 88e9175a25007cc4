package main

import (
	"context"
	"log"

	"github.com/passkeep/passkeep/internal/cli"
	"github.com/passkeep/passkeep/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Root(ctx)
}
