// Package main is the entry point for the virta application.
package main

import (
	"github.com/samber/lo"
	"github.com/virta-dl/virta/cmd"
	"github.com/virta-dl/virta/config"
	"github.com/virta-dl/virta/internal/cache"
	"github.com/virta-dl/virta/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	// Initialize asynchronous background maintenance of the manifest cache.
	go cache.CollectGarbage()

	cmd.Execute()
}
