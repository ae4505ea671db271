package main

// cmd/server is the deployable binary: it only serves. Maintenance commands
// live in cmd/catalog.

import (
	"log"

	"github.com/shashiranjanraj/catalog/internal/server"
)

func main() {
	if err := server.Start(); err != nil {
		log.Fatal(err)
	}
}
