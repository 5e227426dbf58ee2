package main

import (
	"log"

	"github.com/avelling/resman/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ resman failed to start: %v", err)
	}
}
