// pkg/render/engo/assets.go
package engo

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"golang.org/x/image/font/gofont/goregular"
)

// Sprite names
const (
	SpriteDisc = "disc"
	SpriteRing = "ring"
)

const fontURL = "goregular.ttf"

// AssetManager builds the white sprites every body is drawn with. Sprites are
// tinted per entity through RenderComponent.Color.
type AssetManager struct {
	size    int
	sprites map[string]common.Drawable
}

// NewAssetManager creates an asset manager drawing sprites size pixels across
func NewAssetManager(size int) *AssetManager {
	return &AssetManager{
		size:    size,
		sprites: make(map[string]common.Drawable),
	}
}

// LoadAssets uploads the sprite textures. It needs a GL context.
func (am *AssetManager) LoadAssets() error {
	if am.size < 4 {
		return fmt.Errorf("sprite size %d is too small", am.size)
	}
	am.sprites[SpriteDisc] = convertToEngoTexture(discImage(am.size))
	am.sprites[SpriteRing] = convertToEngoTexture(ringImage(am.size, float64(am.size)/16))
	return nil
}

// Sprite returns the named sprite. Before LoadAssets it falls back to engo's
// shape drawables, which need no textures.
func (am *AssetManager) Sprite(name string) common.Drawable {
	if sprite, ok := am.sprites[name]; ok {
		return sprite
	}
	if name == SpriteRing {
		return common.Circle{BorderWidth: 2, BorderColor: color.White}
	}
	return common.Circle{}
}

// Loaded reports whether textures have been uploaded
func (am *AssetManager) Loaded() bool {
	return len(am.sprites) > 0
}

// LoadFont registers the bundled Go font and prepares it at size points
func (am *AssetManager) LoadFont(size float64, fg color.Color) (*common.Font, error) {
	if err := engo.Files.LoadReaderData(fontURL, bytes.NewReader(goregular.TTF)); err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	font := &common.Font{
		URL:  fontURL,
		FG:   fg,
		Size: size,
	}
	if err := font.CreatePreloaded(); err != nil {
		return nil, fmt.Errorf("prepare font: %w", err)
	}
	return font, nil
}

// createBaseImage creates a transparent image with the specified dimensions
func createBaseImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)
	return img
}

// discImage draws a filled white disc whose edge is antialiased over one pixel
func discImage(size int) *image.NRGBA {
	img := createBaseImage(size, size)
	r := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)+0.5-r, float64(y)+0.5-r)
			img.SetNRGBA(x, y, white(coverage(r-d)))
		}
	}
	return img
}

// ringImage draws a white outline width pixels thick
func ringImage(size int, width float64) *image.NRGBA {
	img := createBaseImage(size, size)
	r := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)+0.5-r, float64(y)+0.5-r)
			img.SetNRGBA(x, y, white(min(coverage(r-d), coverage(d-(r-width)))))
		}
	}
	return img
}

// coverage maps a signed distance inside an edge to pixel opacity
func coverage(inside float64) float64 {
	return max(0, min(1, inside+0.5))
}

func white(alpha float64) color.NRGBA {
	return color.NRGBA{R: 255, G: 255, B: 255, A: uint8(math.Round(alpha * 255))}
}

// convertToEngoTexture uploads an image as an engo texture
func convertToEngoTexture(img *image.NRGBA) common.Drawable {
	return common.NewTextureSingle(common.NewImageObject(img))
}
