// ABOUTME: Main player application orchestration
// ABOUTME: Coordinates station resolution, playback, recording, and UI
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/foureyes/marconio-go/internal/artwork"
	"github.com/foureyes/marconio-go/internal/station"
	"github.com/foureyes/marconio-go/internal/ui"
	"github.com/foureyes/marconio-go/pkg/fx"
	"github.com/foureyes/marconio-go/pkg/marconio"
	"github.com/foureyes/marconio-go/pkg/tap"
	"github.com/rs/zerolog/log"
)

// resolveTimeout bounds the directory lookups done before playback starts.
const resolveTimeout = 15 * time.Second

// Config holds player configuration
type Config struct {
	Station    string
	StreamURL  string
	Preset     string
	RecordPath string
	UseTUI     bool
}

// Player represents the main player application
type Player struct {
	config    Config
	manager   *marconio.Manager
	directory *station.Client
	artwork   *artwork.Downloader
	recorder  *tap.Recorder
	controls  *ui.Controls
	tuiProg   *tea.Program
	ctx       context.Context
	cancel    context.CancelFunc

	stationName string
	streamURL   string
	metadata    *marconio.Metadata
}

// New creates a new player
func New(config Config) *Player {
	ctx, cancel := context.WithCancel(context.Background())

	p := &Player{
		config:    config,
		directory: station.NewClient(),
		ctx:       ctx,
		cancel:    cancel,
	}

	if config.UseTUI {
		p.controls = ui.NewControls()
	}

	if dl, err := artwork.NewDownloader(); err != nil {
		log.Warn().Msgf("Artwork cache unavailable: %v", err)
	} else {
		p.artwork = dl
	}

	p.manager = marconio.New(marconio.Config{
		OnPlaybackState: p.onPlaybackState,
		OnMetadata:      p.onMetadata,
		OnError:         p.onError,
	})

	return p
}

// Start resolves the station, begins playback, and blocks until shutdown
func (p *Player) Start() error {
	rctx, rcancel := context.WithTimeout(p.ctx, resolveTimeout)
	streamURL, meta, display, err := p.resolveStation(rctx)
	rcancel()
	if err != nil {
		return err
	}
	p.streamURL = streamURL
	p.metadata = meta
	p.stationName = display

	if p.config.RecordPath != "" {
		recorder, err := tap.NewRecorder(p.config.RecordPath)
		if err != nil {
			return fmt.Errorf("failed to start recorder: %w", err)
		}
		p.recorder = recorder
		p.manager.SetTap(recorder.Tap)
		log.Info().Msgf("Recording raw stream audio to %s", p.config.RecordPath)
	}

	if p.config.Preset != "" {
		if err := p.manager.SetPresetName(p.config.Preset); err != nil {
			return err
		}
	}

	// OS signals cancel the run context
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			log.Info().Msg("Shutdown signal received")
			p.cancel()
		case <-p.ctx.Done():
		}
	}()

	if p.config.UseTUI {
		tuiProg, err := ui.Run(p.controls)
		if err != nil {
			return fmt.Errorf("failed to start TUI: %w", err)
		}
		p.tuiProg = tuiProg

		// Send blocks until the program loop is receiving, so the loop
		// runs before any status update goes out.
		go func() {
			if _, err := tuiProg.Run(); err != nil {
				log.Error().Msgf("TUI failed: %v", err)
			}
			p.cancel()
		}()

		go p.handleControls()
		go func() {
			<-p.ctx.Done()
			tuiProg.Quit()
		}()
	}

	p.sendStatus(ui.StatusMsg{
		Station:   display,
		StreamURL: streamURL,
		Preset:    p.manager.Preset().String(),
	})

	log.Info().Msgf("Playing %s (%s)", display, streamURL)
	if err := p.manager.StartStream(streamURL, meta); err != nil {
		p.shutdown()
		return err
	}

	<-p.ctx.Done()
	return p.shutdown()
}

// Stop stops the player
func (p *Player) Stop() {
	p.cancel()
}

// resolveStation picks the stream URL, initial metadata, and display name
// for the configured station
func (p *Player) resolveStation(ctx context.Context) (string, *marconio.Metadata, string, error) {
	if p.config.StreamURL != "" {
		return p.config.StreamURL, nil, "(custom stream)", nil
	}

	name := p.config.Station
	if name == "" {
		name = "1"
	}

	if url := station.ChannelStreamURL(name); url != "" {
		return url, p.liveMetadata(ctx, name), "NTS " + name, nil
	}

	mixtapes, err := p.directory.Mixtapes(ctx)
	if err != nil {
		return "", nil, "", fmt.Errorf("failed to resolve station %q: %w", name, err)
	}
	for _, m := range mixtapes.Results {
		if m.MixtapeAlias == name {
			meta := &marconio.Metadata{
				Title:      m.Title,
				Artist:     m.Subtitle,
				ArtworkURL: m.Media.PictureLarge,
			}
			return m.AudioStreamEndpoint, meta, m.Title, nil
		}
	}

	return "", nil, "", fmt.Errorf("unknown station: %s", name)
}

// liveMetadata fetches now-playing details for a live channel. Best effort:
// playback proceeds without metadata when the directory is unreachable.
func (p *Player) liveMetadata(ctx context.Context, channel string) *marconio.Metadata {
	live, err := p.directory.Live(ctx)
	if err != nil {
		log.Warn().Msgf("Live directory unavailable: %v", err)
		return nil
	}

	for _, ch := range live.Results {
		if ch.ChannelName == channel {
			return &marconio.Metadata{
				Title:      ch.Now.BroadcastTitle,
				ArtworkURL: ch.Now.ArtworkURL(),
			}
		}
	}
	return nil
}

// handleControls services key requests from the TUI
func (p *Player) handleControls() {
	for {
		select {
		case req := <-p.controls.Requests:
			switch req {
			case ui.RequestQuit:
				p.cancel()
			case ui.RequestCyclePreset:
				p.cyclePreset()
			case ui.RequestToggle:
				p.toggleStream()
			}
		case <-p.ctx.Done():
			return
		}
	}
}

// cyclePreset advances to the next effect preset
func (p *Player) cyclePreset() {
	presets := fx.Presets()
	next := presets[(int(p.manager.Preset())+1)%len(presets)]
	if err := p.manager.SetPreset(next); err != nil {
		log.Error().Msgf("Preset switch failed: %v", err)
		return
	}

	log.Info().Msgf("Preset switched to %s", next)
	p.sendStatus(ui.StatusMsg{Preset: next.String()})
}

// toggleStream stops a playing stream or restarts a stopped one
func (p *Player) toggleStream() {
	if p.manager.Playing() {
		p.manager.StopStream()
		return
	}

	if err := p.manager.StartStream(p.streamURL, p.metadata); err != nil {
		log.Error().Msgf("Stream restart failed: %v", err)
		p.sendStatus(ui.StatusMsg{Err: err.Error()})
	}
}

// onPlaybackState forwards playback transitions to the TUI
func (p *Player) onPlaybackState(playing bool) {
	log.Debug().Msgf("Playback state: playing=%v", playing)
	p.sendStatus(ui.StatusMsg{Playing: &playing})
}

// onMetadata forwards show info to the TUI and prefetches artwork
func (p *Player) onMetadata(meta marconio.Metadata) {
	log.Info().Msgf("Now playing: %s", meta.Title)
	p.sendStatus(ui.StatusMsg{
		Title:  meta.Title,
		Artist: meta.Artist,
		Album:  meta.Album,
	})

	if meta.ArtworkURL != "" && p.artwork != nil {
		go p.fetchArtwork(meta.ArtworkURL)
	}
}

// onError surfaces stream errors in the log and the TUI
func (p *Player) onError(err error) {
	log.Error().Msgf("Stream error: %v", err)
	p.sendStatus(ui.StatusMsg{Err: err.Error()})
}

// fetchArtwork downloads show artwork and hands the local path to the TUI
func (p *Player) fetchArtwork(url string) {
	path, err := p.artwork.Download(url)
	if err != nil {
		log.Warn().Msgf("Artwork download failed: %v", err)
		return
	}
	if path != "" {
		p.sendStatus(ui.StatusMsg{ArtworkPath: path})
	}
}

// sendStatus forwards a status update to the TUI when one is attached
func (p *Player) sendStatus(msg ui.StatusMsg) {
	if p.tuiProg != nil {
		p.tuiProg.Send(msg)
	}
}

// shutdown releases playback resources
func (p *Player) shutdown() error {
	p.cancel()

	var firstErr error
	if err := p.manager.Close(); err != nil {
		log.Warn().Msgf("Manager close failed: %v", err)
		firstErr = err
	}

	if p.recorder != nil {
		if err := p.recorder.Close(); err != nil {
			log.Warn().Msgf("Recorder close failed: %v", err)
			if firstErr == nil {
				firstErr = err
			}
		} else {
			log.Info().Msgf("Recording saved to %s", p.recorder.Path())
		}
	}

	if p.artwork != nil {
		if err := p.artwork.Cleanup(); err != nil {
			log.Warn().Msgf("Artwork cleanup failed: %v", err)
		}
	}

	log.Info().Msg("Player stopped")
	return firstErr
}

// ListStations prints the live channels and mixtapes directory
func ListStations(ctx context.Context, w io.Writer) error {
	client := station.NewClient()

	live, err := client.Live(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch live channels: %w", err)
	}

	mixtapes, err := client.Mixtapes(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch mixtapes: %w", err)
	}

	printDirectory(w, live, mixtapes)
	return nil
}

// printDirectory renders the fetched directory documents
func printDirectory(w io.Writer, live *station.LiveResponse, mixtapes *station.MixtapesResponse) {
	fmt.Fprintln(w, "Live channels:")
	for _, ch := range live.Results {
		line := fmt.Sprintf("  %-2s %s", ch.ChannelName, ch.Now.BroadcastTitle)
		if window := ch.Now.Airtime(); window != "" {
			line += " (" + window + ")"
		}
		fmt.Fprintln(w, line)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Infinite mixtapes:")
	for _, m := range mixtapes.Results {
		fmt.Fprintf(w, "  %-14s %s\n", m.MixtapeAlias, m.Subtitle)
	}
}
