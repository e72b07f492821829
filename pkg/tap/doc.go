// ABOUTME: Tap consumers for raw decoded audio
// ABOUTME: Provides a WAV recorder that plugs into the manager tap
// Package tap provides consumers for the manager's raw sample tap.
//
// Recorder writes everything the tap sees to a WAV file, before any effect
// processing, so recordings capture the stream as broadcast.
//
// Example:
//
//	rec, err := tap.NewRecorder("show.wav")
//	manager.SetTap(rec.Tap)
//	defer rec.Close()
package tap
