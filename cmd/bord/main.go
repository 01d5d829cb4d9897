// Command bord is a small command line task board.
//
//	bord task "Write report" -b Work -p 2
//	bord check 1
//	bord move 1 Done
//	bord list
package main

import (
	"context"
	"os"

	log "github.com/sirupsen/logrus"

	"bord/internal/app"
	"bord/internal/config"
)

func main() {
	cfg := config.Load()
	app.ConfigureLogging(cfg)

	ctx := context.Background()
	a, err := app.Init(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Initialization failed: %v", err)
	}

	code, err := a.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	if cerr := a.Close(); cerr != nil {
		log.Warnf("closing store: %v", cerr)
	}
	if err != nil {
		log.Errorf("❌ %v", err)
		os.Exit(1)
	}
	os.Exit(code)
}
