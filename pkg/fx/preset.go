// ABOUTME: Effect preset definitions
// ABOUTME: Maps preset names to small integers for lock-free sharing
package fx

import "fmt"

// Preset selects a fixed bundle of effect-chain parameters. Presets are
// encoded as small integers so a live preset can be shared across
// goroutines in a single atomic cell.
type Preset int

const (
	// PresetClean bypasses the chain entirely
	PresetClean Preset = iota
	// PresetCassette adds band limiting, tape warble and gentle saturation
	PresetCassette
	// PresetBass boosts the low end with a shelf and peaking filter
	PresetBass
	// PresetRadio narrows the band and pushes mids hard
	PresetRadio
)

// String returns the wire name of the preset
func (p Preset) String() string {
	switch p {
	case PresetClean:
		return "clean"
	case PresetCassette:
		return "cassette"
	case PresetBass:
		return "bass"
	case PresetRadio:
		return "radio"
	default:
		return fmt.Sprintf("preset(%d)", int(p))
	}
}

// Valid reports whether p names a known preset
func (p Preset) Valid() bool {
	return p >= PresetClean && p <= PresetRadio
}

// ParsePreset maps a wire name to its Preset value
func ParsePreset(name string) (Preset, error) {
	switch name {
	case "clean":
		return PresetClean, nil
	case "cassette":
		return PresetCassette, nil
	case "bass":
		return PresetBass, nil
	case "radio":
		return PresetRadio, nil
	default:
		return PresetClean, fmt.Errorf("unsupported audio fx preset: %s", name)
	}
}

// Presets lists every known preset in wire order
func Presets() []Preset {
	return []Preset{PresetClean, PresetCassette, PresetBass, PresetRadio}
}
