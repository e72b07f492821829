// ABOUTME: Entry point for the station directory lister
// ABOUTME: Prints live channels and mixtapes from the radio directory
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/foureyes/marconio-go/internal/app"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	timeout = flag.Duration("timeout", 15*time.Second, "Directory request timeout")
	debug   = flag.Bool("debug", false, "Enable debug logging")
)

func main() {
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := app.ListStations(ctx, os.Stdout); err != nil {
		log.Fatal().Msgf("Failed to list stations: %v", err)
	}
}
