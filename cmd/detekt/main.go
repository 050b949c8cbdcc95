package main

import (
	"os"

	"github.com/alyssa-glean/detekt/internal/app"
)

func main() {
	if err := app.BuildRoot().Execute(); err != nil {
		os.Exit(1)
	}
}
