package main

import (
	"context"
	"fmt"
	"os"

	"github.com/tphakala/venomid/cmd"
	"github.com/tphakala/venomid/internal/conf"
)

// Set at build time:
//
//	go build -ldflags "-X main.version=1.0.0 -X main.buildDate=$(date -u +%Y-%m-%d)"
var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	settings := &conf.Settings{Version: version, BuildDate: buildDate}

	if err := cmd.RootCommand(settings).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
