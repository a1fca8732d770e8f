package texture

import (
	"embed"
	"fmt"
	"image"
	"io/fs"
	"path"
	"strings"
)

//go:embed assets/*.png
var builtinFS embed.FS

// Builtin returns a store preloaded with the embedded sprite art,
// registered under the file base names ("spaceship", "comet"). The
// embedded files ship inside the binary, so a failure here is a build
// defect and reported as fatal rather than tolerated.
func Builtin() (*Store, error) {
	s := NewStore()

	entries, err := fs.ReadDir(builtinFS, "assets")
	if err != nil {
		return nil, fmt.Errorf("builtin textures: %w", err)
	}

	for _, e := range entries {
		f, err := builtinFS.Open(path.Join("assets", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("builtin texture %s: %w", e.Name(), err)
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("builtin texture %s: decode: %w", e.Name(), err)
		}

		name := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		s.Add(name, Convert(img, SpriteCols))
	}
	return s, nil
}
