// ABOUTME: High-level Marconio library API
// ABOUTME: Provides the playback Manager for streaming radio with audio effects
// Package marconio provides high-level APIs for streaming radio playback.
//
// This is the main entry point for most library users, providing:
//   - Manager: Start and stop stream sessions and switch effect presets
//   - Metadata: Program information attached to a stream
//   - Tap: Access to raw decoded samples before processing
//
// For lower-level control, see the audio and fx packages.
//
// Example:
//
//	manager := marconio.New(marconio.Config{
//	    OnMetadata: func(meta marconio.Metadata) {
//	        fmt.Println("Now playing:", meta.Title)
//	    },
//	})
//	err := manager.StartStream("https://ice1.somafm.com/groovesalad-128-mp3", nil)
//	err = manager.SetPresetName("cassette")
//	manager.StopStream()
package marconio
