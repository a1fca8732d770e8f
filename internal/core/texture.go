package core

// TextureHandle identifies a loaded texture inside a texture store.
// Handles are opaque to the game logic; the drawer resolves them at
// render time.
type TextureHandle int32

// InvalidTexture marks a texture that failed to load or was never
// assigned. Drawers fall back to a solid block for invalid handles.
const InvalidTexture TextureHandle = -1

// Valid reports whether the handle refers to a loaded texture.
func (h TextureHandle) Valid() bool {
	return h >= 0
}
