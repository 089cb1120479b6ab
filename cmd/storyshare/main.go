package main

import (
	"context"
	"log"
	"os"

	"storyshare/internal/buildinfo"
	"storyshare/internal/client/cli"
	"storyshare/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
