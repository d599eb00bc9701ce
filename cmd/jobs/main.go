// Package main is the batch entry point for loading and refreshing stored bars.
//
//	go run ./cmd/jobs populate --yes
//	go run ./cmd/jobs update
//	go run ./cmd/jobs schedule
package main

import (
	"os"

	"mltrading-api/cmd/jobs/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
