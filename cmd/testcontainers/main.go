package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/testtrackhq/testtrack/tests/helpers"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	var dbType string
	flag.StringVar(&dbType, "d", "mariadb", "database to run (mariadb or postgres)")
	flag.Parse()

	usage := `
Run a development database container for testtrack with the environment
variables from the .env file.

Usage:

testcontainers [-h] [-f ENV_FILE_PATH] [-d DB_TYPE]

ENV_FILE_PATH: path to the .env file
DB_TYPE: mariadb (default) or postgres

example
  testcontainers -f /path/to/something/.env -d postgres
`
	// if -h flag print usage and return
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		log.Printf("Loading environment variables from %s\n", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	} else {
		log.Printf("No environment file specified, using current environment variables\n")
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGTSTP, syscall.SIGQUIT)

	var dc *helpers.DatabaseContainer
	go func() {
		switch dbType {
		case "postgres":
			dc = helpers.StartPostgres(nil)
		default:
			dc = helpers.StartMariaDB(nil)
		}
		cfg := dc.Config
		log.Printf("Database ready: DB_TYPE=%s DB_HOST=%s DB_PORT=%s DB_DATABASE=%s DB_USER=%s DB_PASSWORD=%s",
			cfg.DBType, cfg.DBHost, cfg.DBPort, cfg.DBDatabase, cfg.DBUser, cfg.DBPassword)
	}()

	sig := <-sigs
	log.Printf("\nReceived signal: %v, terminating database container...\n", sig)
	if dc != nil {
		dc.Terminate(nil)
	}
}
