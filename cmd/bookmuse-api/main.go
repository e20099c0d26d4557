package main

import (
	"log"

	"github.com/bookmuse/bookmuse-api/internal/config"
	"github.com/bookmuse/bookmuse-api/internal/infrastructure/server"
)

func main() {
	log.Println("Starting Bookmuse API...")

	// Load Configuration
	cfg := config.Load()

	srv := server.New(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}
}
