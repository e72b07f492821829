// ABOUTME: Version and product identity constants
// ABOUTME: Single source of truth for user-facing identification strings
package version

// Version is the software version shown in the UI and sent to servers
const Version = "0.1.0"

// Product is the user-facing product name
const Product = "Marconio"

// Manufacturer identifies who makes this software
const Manufacturer = "Four Eyes"

// UserAgent returns the HTTP User-Agent string for outbound requests.
func UserAgent() string {
	return Product + "/" + Version
}
