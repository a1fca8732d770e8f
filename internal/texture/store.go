package texture

import (
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	// Decoders for the formats sprite files may come in.
	_ "image/jpeg"
	_ "image/png"

	"github.com/cometfall/cometfall/internal/core"
)

// Store maps texture handles to converted sprite art.
// Art registers under a name; the game holds only handles and the
// store resolves them at draw time. Both sides tolerate failure: a
// load error yields InvalidTexture, and drawing an invalid handle
// falls back to a solid block, so a missing sprite degrades the
// picture without stopping the run.
type Store struct {
	mu     sync.RWMutex
	images []*Image
	names  map[string]core.TextureHandle
}

// NewStore creates an empty texture store.
func NewStore() *Store {
	return &Store{
		names: make(map[string]core.TextureHandle),
	}
}

// Add registers converted art under a name and returns its handle.
// Re-adding a name points it at the new art; the old handle stays
// resolvable so entities created earlier keep drawing.
func (s *Store) Add(name string, img *Image) core.TextureHandle {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.images = append(s.images, img)
	h := core.TextureHandle(len(s.images) - 1)
	s.names[name] = h
	return h
}

// Handle returns the handle registered under name, or InvalidTexture
// when the name is unknown.
func (s *Store) Handle(name string) core.TextureHandle {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if h, ok := s.names[name]; ok {
		return h
	}
	return core.InvalidTexture
}

// Lookup resolves a handle to its art, or nil for invalid and unknown
// handles.
func (s *Store) Lookup(h core.TextureHandle) *Image {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !h.Valid() || int(h) >= len(s.images) {
		return nil
	}
	return s.images[h]
}

// Names returns all registered texture names, sorted.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.names))
	for name := range s.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadFile decodes an image file and registers it under its base name,
// so "textures/comet.png" becomes "comet". On failure it returns
// InvalidTexture and the error; the caller logs it and the game keeps
// running with degraded art.
func (s *Store) LoadFile(path string) (core.TextureHandle, error) {
	f, err := os.Open(path)
	if err != nil {
		return core.InvalidTexture, fmt.Errorf("texture %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return core.InvalidTexture, fmt.Errorf("texture %s: decode: %w", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return s.Add(name, Convert(img, SpriteCols)), nil
}

// Draw blits the art for a handle into the cell rectangle, scaled
// nearest-neighbor and rotated by angleDeg around the rect center.
// Invalid and unknown handles draw as a plain solid block so a failed
// texture load stays visible instead of crashing or vanishing.
func (s *Store) Draw(dst *core.Screen, h core.TextureHandle, rect core.Rect, angleDeg float64) {
	if rect.W <= 0 || rect.H <= 0 {
		return
	}

	img := s.Lookup(h)
	if img == nil || img.W == 0 || img.H == 0 {
		dst.DrawRect(rect, '█')
		return
	}

	sin, cos := 0.0, 1.0
	if angleDeg != 0 {
		rad := angleDeg * math.Pi / 180
		sin, cos = math.Sin(rad), math.Cos(rad)
	}

	// Map each destination cell center back into the source grid; the
	// rotation is inverted so the art turns counter-clockwise. Samples
	// that land outside the source read as transparent, which SetCell
	// skips, so rotated corners clip cleanly.
	for dy := 0; dy < rect.H; dy++ {
		for dx := 0; dx < rect.W; dx++ {
			nx := (float64(dx)+0.5)/float64(rect.W) - 0.5
			ny := (float64(dy)+0.5)/float64(rect.H) - 0.5

			rx := nx*cos + ny*sin
			ry := -nx*sin + ny*cos

			sx := int(math.Floor((rx + 0.5) * float64(img.W)))
			sy := int(math.Floor((ry + 0.5) * float64(img.H)))
			dst.SetCell(rect.X+dx, rect.Y+dy, img.At(sx, sy))
		}
	}
}
