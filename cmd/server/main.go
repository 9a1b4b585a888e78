// Command server runs the HTTP API and the in-process job runner.
package main

import (
	"context"
	"log"

	"github.com/teamledger/teamledger-backend/internal/app"
)

func main() {
	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
