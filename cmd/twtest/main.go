// Package main provides the twtest CLI: build CSS from a styling config,
// compare stylesheets modulo formatting, and verify golden fixtures.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/yacobolo/twtest/internal/report"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, report.RenderStyle(report.StyleRed, "Error: "+err.Error(), useColors()))
		stop()
		os.Exit(1)
	}
}
