package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"

	"github.com/minepkg/mclaunch/cmd"
	"github.com/minepkg/mclaunch/internals/ownhttp"
)

// set by goreleaser
var version string

func main() {
	if version != "" {
		cmd.Version = version
		ownhttp.UserAgent = "mclaunch/" + version
	}

	// replace default http client
	http.DefaultClient = ownhttp.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	cmd.Execute(ctx)
}
