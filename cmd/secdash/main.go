package main

import (
	"log"

	"github.com/MrSnakeDoc/secdash/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ secdash failed to start: %v", err)
	}
}
