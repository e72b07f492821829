// ABOUTME: Playback worker goroutine for a single stream session
// ABOUTME: Pulls frames, applies effects, and paces the sink queue
package marconio

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/foureyes/marconio-go/pkg/audio"
	"github.com/foureyes/marconio-go/pkg/audio/decode"
	"github.com/foureyes/marconio-go/pkg/audio/output"
	"github.com/foureyes/marconio-go/pkg/audio/resample"
	"github.com/foureyes/marconio-go/pkg/fx"
)

const (
	defaultQueueLimit = 24
	queuePollInterval = 10 * time.Millisecond
	noDataRetryDelay  = 8 * time.Millisecond
)

// runStream is the body of one session goroutine.
func (m *Manager) runStream(s *session, url string) {
	defer close(s.done)
	defer m.finishSession(s)

	body, err := m.openStream(s, url)
	if err != nil {
		if s.ctx.Err() == nil {
			m.notifyError(err)
		}
		return
	}
	defer body.Close()

	dec, err := m.newDecoder(body)
	if err != nil {
		if s.ctx.Err() == nil {
			m.notifyError(fmt.Errorf("failed to create decoder: %w", err))
		}
		return
	}

	m.playSession(s, dec, m.newSink())
}

// openStream connects to the stream URL. Any failure here is fatal for the
// session: connection errors and non-2xx responses both end it.
func (m *Manager) openStream(s *session, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(s.ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid stream url %q: %w", url, err)
	}
	req.Header.Set("User-Agent", m.config.UserAgent)

	resp, err := m.config.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to stream: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("stream returned status %s", resp.Status)
	}

	return resp.Body, nil
}

// playSession runs the frame loop: decode, process, enqueue, pace.
func (m *Manager) playSession(s *session, dec decode.FrameDecoder, sink output.Sink) {
	proc := fx.NewProcessor()

	var (
		format    audio.Format
		effective audio.Format
		rs        *resample.Resampler
		opened    bool
	)

	for {
		select {
		case <-s.ctx.Done():
			sink.Stop()
			return
		default:
		}

		samples, rate, channels, err := dec.ReadFrame()
		switch {
		case errors.Is(err, io.EOF):
			drainAndStop(s, sink)
			return

		case errors.Is(err, decode.ErrNoData):
			select {
			case <-s.ctx.Done():
				sink.Stop()
				return
			case <-time.After(noDataRetryDelay):
			}
			continue

		case err != nil:
			if s.ctx.Err() != nil {
				sink.Stop()
				return
			}
			// Bad frames are skipped like missing data; the stream may
			// recover. Only session-fatal errors reach OnError.
			log.Warn().Msgf("Session %s decode error, skipping frame: %v", s.id, err)
			select {
			case <-s.ctx.Done():
				sink.Stop()
				return
			case <-time.After(noDataRetryDelay):
			}
			continue
		}

		frameFormat := audio.Format{SampleRate: rate, Channels: channels}
		if frameFormat != format {
			format = frameFormat

			if !opened {
				effective, err = sink.Open(format)
				if err != nil {
					m.notifyError(fmt.Errorf("failed to initialize output: %w", err))
					return
				}
				opened = true

				// A replaced session must not hold the device.
				if !m.current(s) {
					sink.Stop()
					return
				}
				log.Debug().Msgf("Session %s playing %s through %s", s.id, format, effective)
			} else {
				log.Debug().Msgf("Session %s stream format changed to %s", s.id, format)
			}

			if effective.SampleRate != format.SampleRate {
				rs = resample.New(format.SampleRate, effective.SampleRate, format.Channels)
			} else {
				rs = nil
			}
		}

		block := audio.Int16ToFloat32(samples)

		var raw []float32
		tap := m.tap.Load()
		if tap != nil {
			raw = make([]float32, len(block))
			copy(raw, block)
		}

		// Effects run at the stream's native format; the preset cell is
		// read once per frame so switches land on frame boundaries.
		proc.Configure(format.SampleRate, format.Channels, fx.Preset(m.preset.Load()))
		proc.ProcessBuffer(block)

		if rs != nil {
			out := make([]float32, rs.OutputLen(len(block)))
			n := rs.Resample(block, out)
			block = out[:n]
		}
		if format.Channels != effective.Channels {
			block, err = audio.ConvertChannels(block, format.Channels, effective.Channels)
			if err != nil {
				m.notifyError(fmt.Errorf("playback error: %w", err))
				sink.Stop()
				return
			}
		}

		if len(block) > 0 {
			if err := sink.Enqueue(block); err != nil {
				if s.ctx.Err() == nil {
					m.notifyError(fmt.Errorf("playback error: %w", err))
				}
				sink.Stop()
				return
			}
		}

		if tap != nil {
			(*tap)(raw, format.Channels, format.SampleRate)
		}

		for sink.Queued() > m.config.QueueLimit {
			select {
			case <-s.ctx.Done():
				sink.Stop()
				return
			case <-time.After(queuePollInterval):
			}
		}
	}
}

// drainAndStop lets queued audio finish playing, then stops the sink.
// Cancellation during the drain stops immediately.
func drainAndStop(s *session, sink output.Sink) {
	log.Debug().Msgf("Session %s stream ended, draining queue", s.id)
	for sink.Queued() > 0 {
		select {
		case <-s.ctx.Done():
			sink.Stop()
			return
		case <-time.After(queuePollInterval):
		}
	}
	sink.Stop()
}

func (m *Manager) newDecoder(r io.Reader) (decode.FrameDecoder, error) {
	if m.config.NewDecoder != nil {
		return m.config.NewDecoder(r)
	}
	return decode.NewMP3(r)
}

func (m *Manager) newSink() output.Sink {
	if m.config.NewSink != nil {
		return m.config.NewSink()
	}
	return output.NewOto()
}
