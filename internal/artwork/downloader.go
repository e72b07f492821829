// ABOUTME: Artwork downloader for now-playing show images
// ABOUTME: Downloads images from metadata URLs and saves to temp directory
package artwork

import (
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/foureyes/marconio-go/internal/version"
	"github.com/rs/zerolog/log"
)

// Downloader manages artwork downloads
type Downloader struct {
	cacheDir    string
	currentPath string
	client      *http.Client
}

// NewDownloader creates a new artwork downloader
func NewDownloader() (*Downloader, error) {
	cacheDir := filepath.Join(os.TempDir(), "marconio-artwork")
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &Downloader{
		cacheDir: cacheDir,
		client:   &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Download fetches artwork from URL and saves to cache. An empty URL is a
// no-op and returns an empty path.
func (d *Downloader) Download(url string) (string, error) {
	if url == "" {
		return "", nil
	}

	// Create a cache key from URL hash
	hash := sha256.Sum256([]byte(url))
	ext := getExtension(url)
	filename := fmt.Sprintf("%x%s", hash[:8], ext)
	cachePath := filepath.Join(d.cacheDir, filename)

	// Check if already cached
	if _, err := os.Stat(cachePath); err == nil {
		log.Debug().Msgf("Artwork cache hit: %s", cachePath)
		d.currentPath = cachePath
		return cachePath, nil
	}

	// Download
	log.Debug().Msgf("Downloading artwork: %s", url)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create artwork request: %w", err)
	}
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download artwork: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("artwork download failed: HTTP %d", resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return "", fmt.Errorf("artwork is not an image: %s", ct)
	}

	// Save to file
	f, err := os.Create(cachePath)
	if err != nil {
		return "", fmt.Errorf("failed to create cache file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		os.Remove(cachePath)
		return "", fmt.Errorf("failed to save artwork: %w", err)
	}

	log.Debug().Msgf("Artwork saved: %s", cachePath)
	d.currentPath = cachePath
	return cachePath, nil
}

// CurrentPath returns the path to the current artwork
func (d *Downloader) CurrentPath() string {
	return d.currentPath
}

// getExtension extracts file extension from URL
func getExtension(url string) string {
	// Remove query string
	url = strings.Split(url, "?")[0]

	// Get extension
	ext := filepath.Ext(url)
	if ext == "" {
		ext = ".jpg" // Default to JPEG
	}

	return ext
}

// Cleanup removes old cached artwork
func (d *Downloader) Cleanup() error {
	return os.RemoveAll(d.cacheDir)
}
