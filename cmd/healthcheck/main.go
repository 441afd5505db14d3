package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/testtrackhq/testtrack/internal/config"
	"github.com/testtrackhq/testtrack/internal/database"
	"github.com/testtrackhq/testtrack/internal/services"
	"github.com/testtrackhq/testtrack/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Confirm the server port is accepting connections
	if err := utils.PingService(fmt.Sprintf("http://localhost:%s", cfg.Port), 1500*time.Millisecond); err != nil {
		log.Fatalf("Server unreachable: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Perform health check
	result := services.HealthCheck(cfg, db)

	// Output result as JSON
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal health check result: %v", err)
	}

	fmt.Println(string(output))

	// Exit with appropriate code
	if result.Status != "healthy" {
		os.Exit(1)
	}
	os.Exit(0)
}
