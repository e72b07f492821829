// ABOUTME: High-level playback Manager API for stream sessions
// ABOUTME: Owns session lifecycle, preset selection, and playback callbacks
package marconio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/foureyes/marconio-go/internal/version"
	"github.com/foureyes/marconio-go/pkg/audio/decode"
	"github.com/foureyes/marconio-go/pkg/audio/output"
	"github.com/foureyes/marconio-go/pkg/fx"
)

// Config holds manager configuration
type Config struct {
	// Client is the HTTP client used to fetch streams. Live streams never
	// end, so the default client carries no overall timeout.
	Client *http.Client

	// UserAgent is sent with stream requests (default: version.UserAgent())
	UserAgent string

	// QueueLimit is how many processed blocks may wait in the sink before
	// the pipeline pauses (default: 24)
	QueueLimit int

	// OnPlaybackState is called when playback starts or stops. Calls are
	// serialized and always settle on the newest state; the callback must
	// return promptly and must not call back into the Manager.
	OnPlaybackState func(playing bool)

	// OnMetadata is called when a stream starts with metadata attached
	OnMetadata func(Metadata)

	// OnError is called when errors occur
	OnError func(error)

	// NewDecoder overrides the stream decoder (default: MP3)
	NewDecoder func(r io.Reader) (decode.FrameDecoder, error)

	// NewSink overrides the playback sink (default: audio device)
	NewSink func() output.Sink
}

// Metadata contains program information for a stream
type Metadata struct {
	Title      string
	Artist     string
	Album      string
	ArtworkURL string
}

// Tap receives raw decoded samples before any processing is applied. It runs
// on the playback goroutine and must return quickly.
type Tap func(samples []float32, channels, sampleRate int)

// Manager owns at most one playback session at a time and hands the active
// effect preset to it. It is safe for concurrent use.
type Manager struct {
	config Config

	// preset is shared with the playback goroutine, which reads it once
	// per frame
	preset atomic.Uint32
	tap    atomic.Pointer[Tap]

	mu       sync.Mutex
	session  *session
	playing  bool
	stateSeq uint64
	closed   bool

	// notifyMu serializes playback-state delivery; deliveredSeq is the
	// newest transition the callback has observed.
	notifyMu     sync.Mutex
	deliveredSeq uint64
}

// New creates a manager with the given configuration
func New(config Config) *Manager {
	if config.Client == nil {
		config.Client = &http.Client{}
	}
	if config.UserAgent == "" {
		config.UserAgent = version.UserAgent()
	}
	if config.QueueLimit == 0 {
		config.QueueLimit = defaultQueueLimit
	}

	return &Manager{config: config}
}

// StartStream starts playing the stream at url, replacing any session that is
// already running. Metadata is optional and is reported through OnMetadata.
// The playing state is synced before StartStream returns; replacing a running
// session syncs playing again with no stopped state in between.
func (m *Manager) StartStream(url string, meta *Metadata) error {
	if url == "" {
		return fmt.Errorf("stream url is empty")
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return fmt.Errorf("manager is closed")
	}

	old := m.session
	s := newSession()
	m.session = s
	m.playing = true
	m.stateSeq++
	seq := m.stateSeq
	m.mu.Unlock()

	if old != nil {
		old.cancel()
	}
	if meta != nil {
		m.notifyMetadata(*meta)
	}

	log.Debug().Msgf("Starting stream session %s: %s", s.id, url)
	m.syncPlaybackState(seq, true)
	go m.runStream(s, url)

	return nil
}

// StopStream stops the active session without waiting for its teardown. The
// session's audio halts immediately; its goroutine unwinds in the background.
func (m *Manager) StopStream() {
	m.mu.Lock()
	s := m.session
	m.session = nil
	wasPlaying := m.playing
	m.playing = false
	var seq uint64
	if wasPlaying {
		m.stateSeq++
		seq = m.stateSeq
	}
	m.mu.Unlock()

	if s == nil {
		return
	}

	log.Debug().Msgf("Stopping stream session %s", s.id)
	s.cancel()
	if wasPlaying {
		m.syncPlaybackState(seq, false)
	}
}

// SetPreset selects the effect preset for the current and future sessions.
// The running session picks it up at the next frame boundary.
func (m *Manager) SetPreset(p fx.Preset) error {
	if !p.Valid() {
		return fmt.Errorf("unsupported audio fx preset: %s", p)
	}
	m.preset.Store(uint32(p))
	return nil
}

// SetPresetName selects the effect preset by its wire name.
func (m *Manager) SetPresetName(name string) error {
	p, err := fx.ParsePreset(name)
	if err != nil {
		return err
	}
	return m.SetPreset(p)
}

// Preset returns the currently selected effect preset.
func (m *Manager) Preset() fx.Preset {
	return fx.Preset(m.preset.Load())
}

// SetTap installs a callback that observes raw decoded samples before any
// processing. Pass nil to remove it.
func (m *Manager) SetTap(tap Tap) {
	if tap == nil {
		m.tap.Store(nil)
		return
	}
	m.tap.Store(&tap)
}

// Playing reports whether a stream session is active.
func (m *Manager) Playing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing
}

// Close stops the active session, waits for its teardown, and refuses
// further streams.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	s := m.session
	m.session = nil
	wasPlaying := m.playing
	m.playing = false
	var seq uint64
	if wasPlaying {
		m.stateSeq++
		seq = m.stateSeq
	}
	m.mu.Unlock()

	if s != nil {
		s.cancel()
		<-s.done
		if wasPlaying {
			m.syncPlaybackState(seq, false)
		}
	}
	return nil
}

// current reports whether s is still the manager's active session.
func (m *Manager) current(s *session) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session == s
}

// finishSession clears s if it is still the current session and reports the
// stop. A detached session ends silently; its replacement already owns the
// observable state.
func (m *Manager) finishSession(s *session) {
	m.mu.Lock()
	current := m.session == s
	wasPlaying := m.playing
	var seq uint64
	if current {
		m.session = nil
		m.playing = false
		if wasPlaying {
			m.stateSeq++
			seq = m.stateSeq
		}
	}
	m.mu.Unlock()

	if current && wasPlaying {
		m.syncPlaybackState(seq, false)
	}
}

// syncPlaybackState delivers one playback-state transition to the callback.
// Delivery is serialized, and a transition superseded before its delivery
// ran is dropped, so the callback settles on the newest state no matter
// which goroutine carried which transition.
func (m *Manager) syncPlaybackState(seq uint64, playing bool) {
	if m.config.OnPlaybackState == nil {
		return
	}

	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()
	if seq <= m.deliveredSeq {
		return
	}
	m.deliveredSeq = seq
	m.config.OnPlaybackState(playing)
}

// notifyMetadata calls the OnMetadata callback if set
func (m *Manager) notifyMetadata(meta Metadata) {
	if m.config.OnMetadata != nil {
		m.config.OnMetadata(meta)
	}
}

// notifyError calls the OnError callback if set
func (m *Manager) notifyError(err error) {
	if m.config.OnError != nil {
		m.config.OnError(err)
	} else {
		log.Error().Msgf("Stream error: %v", err)
	}
}

// session identifies one playback run. The id ties log lines together.
type session struct {
	id     string
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

func newSession() *session {
	ctx, cancel := context.WithCancel(context.Background())
	return &session{
		id:     uuid.New().String(),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}
