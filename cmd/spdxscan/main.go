// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Program spdxscan summarizes the sections of SPDX 2.2 JSON documents.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/creachadair/spdxstream/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if err := cli.New().ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}
