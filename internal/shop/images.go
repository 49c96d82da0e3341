package shop

import (
	"context"
	"fmt"
	"image"
	_ "image/gif" // Register decoders for catalog thumbnails
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ImageLoader downloads item thumbnails, scales them to a square and caches
// them by item ID. It is safe for concurrent use.
type ImageLoader struct {
	http   *http.Client
	size   int
	logger *log.Logger

	mu    sync.Mutex
	cache map[string]image.Image
}

// NewImageLoader creates a loader producing size x size thumbnails. A nil
// client uses http.DefaultClient.
func NewImageLoader(client *http.Client, size int, logger *log.Logger) *ImageLoader {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = log.Default()
	}
	if size <= 0 {
		size = 100
	}
	return &ImageLoader{
		http:   client,
		size:   size,
		logger: logger,
		cache:  make(map[string]image.Image),
	}
}

// Load returns the thumbnail for key, fetching url on a cache miss.
func (l *ImageLoader) Load(ctx context.Context, key, url string) (image.Image, error) {
	if img, ok := l.Cached(key); ok {
		return img, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("shop: bad image url %q: %w", url, err)
	}
	resp, err := l.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("shop: cannot fetch image %q: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("shop: cannot fetch image %q: status %d", url, resp.StatusCode)
	}

	src, format, err := image.Decode(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("shop: cannot decode image %q: %w", url, err)
	}

	thumb := image.NewRGBA(image.Rect(0, 0, l.size, l.size))
	draw.CatmullRom.Scale(thumb, thumb.Bounds(), src, src.Bounds(), draw.Over, nil)

	l.mu.Lock()
	l.cache[key] = thumb
	l.mu.Unlock()

	l.logger.Debug("thumbnail loaded", "key", key, "format", format)
	return thumb, nil
}

// Cached returns a previously loaded thumbnail.
func (l *ImageLoader) Cached(key string) (image.Image, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	img, ok := l.cache[key]
	return img, ok
}

// Size returns the thumbnail edge length in pixels.
func (l *ImageLoader) Size() int {
	return l.size
}
