package render

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// textureCache resolves emitter texture references to GL texture ids.
// A bare name searches the texture directory across known extensions;
// anything with a path separator loads directly. Failed lookups cache 0
// so a missing file logs once, not every frame.
type textureCache struct {
	dir     string
	byRef   map[string]uint32
	created []uint32
}

// Game textures also ship as .tga; the stdlib cannot decode those, so a
// tga-only texture falls through to the untextured shader path.
var textureExtensions = []string{".png", ".jpg", ".jpeg", ".tga"}

func newTextureCache() *textureCache {
	return &textureCache{byRef: map[string]uint32{}}
}

// SetDir points name lookups at a new directory and invalidates cached
// failures so renamed or newly copied files get another chance.
func (c *textureCache) SetDir(dir string) {
	if dir == c.dir {
		return
	}
	c.dir = dir
	for ref, id := range c.byRef {
		if id == 0 {
			delete(c.byRef, ref)
		}
	}
}

// Get returns the GL texture for ref, loading it on first use. Zero means
// untextured.
func (c *textureCache) Get(ref string) uint32 {
	if ref == "" {
		return 0
	}
	if id, ok := c.byRef[ref]; ok {
		return id
	}

	id, path, err := c.load(ref)
	if err != nil {
		log.Printf("texture %q unavailable: %v", ref, err)
	} else {
		log.Printf("loaded texture %s", path)
		c.created = append(c.created, id)
	}
	c.byRef[ref] = id
	return id
}

func (c *textureCache) load(ref string) (uint32, string, error) {
	if strings.ContainsAny(ref, `/\`) {
		img, err := decodeImageFile(ref)
		if err != nil {
			return 0, "", err
		}
		return uploadImage(img), ref, nil
	}

	var lastErr error
	for _, ext := range textureExtensions {
		path := filepath.Join(c.dir, ref+ext)
		img, err := decodeImageFile(path)
		if err != nil {
			lastErr = err
			continue
		}
		return uploadImage(img), path, nil
	}
	return 0, "", fmt.Errorf("no loadable file for %q in %s: %w", ref, c.dir, lastErr)
}

// Destroy frees every texture this cache created.
func (c *textureCache) Destroy() {
	for _, id := range c.created {
		gl.DeleteTextures(1, &id)
	}
	c.created = nil
	c.byRef = map[string]uint32{}
}

func decodeImageFile(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	b := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	// Flip vertically while copying; GL samples with origin at bottom-left.
	for y := 0; y < b.Dy(); y++ {
		row := image.Rect(0, b.Dy()-1-y, b.Dx(), b.Dy()-y)
		draw.Draw(rgba, row, src, image.Pt(b.Min.X, b.Min.Y+y), draw.Src)
	}
	return rgba, nil
}

func uploadImage(img *image.RGBA) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	w, h := img.Rect.Dx(), img.Rect.Dy()
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(w), int32(h), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id
}
