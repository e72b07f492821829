// ABOUTME: Entry point for the Marconio radio player
// ABOUTME: Parses CLI flags and starts the player application
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/foureyes/marconio-go/internal/app"
	"github.com/foureyes/marconio-go/internal/version"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	stationFlag = flag.String("station", "", "Live channel (1, 2) or mixtape alias (default: 1)")
	urlFlag     = flag.String("url", "", "Play a stream URL directly, skipping the directory")
	presetFlag  = flag.String("preset", "clean", "Audio effect preset: clean, cassette, bass, radio")
	recordFlag  = flag.String("record", "", "Record raw stream audio to a WAV file")
	listFlag    = flag.Bool("list", false, "List live channels and mixtapes, then exit")
	logFile     = flag.String("log-file", "marconio.log", "Log file path")
	noTUI       = flag.Bool("no-tui", false, "Disable TUI, use streaming logs instead")
	debugFlag   = flag.Bool("debug", false, "Enable debug logging")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s %s\n", version.Product, version.Version)
		return
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debugFlag {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *listFlag {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := app.ListStations(ctx, os.Stdout); err != nil {
			log.Fatal().Msgf("Failed to list stations: %v", err)
		}
		return
	}

	useTUI := !*noTUI

	// The TUI owns the terminal, so logs go to the file; streaming mode
	// mirrors them to stdout as well
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = f.Close() }()

	if useTUI {
		log.Logger = zerolog.New(f).With().Timestamp().Logger()
	} else {
		console := zerolog.ConsoleWriter{Out: os.Stdout}
		log.Logger = zerolog.New(zerolog.MultiLevelWriter(console, f)).With().Timestamp().Logger()
	}

	log.Info().Msgf("Starting %s %s", version.Product, version.Version)

	player := app.New(app.Config{
		Station:    *stationFlag,
		StreamURL:  *urlFlag,
		Preset:     *presetFlag,
		RecordPath: *recordFlag,
		UseTUI:     useTUI,
	})

	if err := player.Start(); err != nil {
		log.Fatal().Msgf("Player failed: %v", err)
	}
}
