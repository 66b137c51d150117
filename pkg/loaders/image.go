package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// LoadImage loads a PNG or JPEG image
func LoadImage(filename string) (image.Image, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Decode image (auto-detects PNG/JPEG from file header)
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// ImageTexture converts an image into a texture grid. The image's top-left pixel
// is cell (0, 0). A scale <= 0 maps texture coordinates in [0, 1) onto the
// image width once.
func ImageTexture(img image.Image, scale float64) *material.Texture {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return nil
	}
	if scale <= 0 {
		scale = 1.0 / float64(width)
	}

	pixels := make([][]core.Color, width)
	for x := 0; x < width; x++ {
		pixels[x] = make([]core.Color, height)
		for y := 0; y < height; y++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[x][y] = core.NewColor(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return material.NewTexture(pixels, scale, core.Vec2{})
}

// LoadImageTexture loads a PNG or JPEG file as a texture
func LoadImageTexture(filename string, scale float64) (*material.Texture, error) {
	img, err := LoadImage(filename)
	if err != nil {
		return nil, err
	}
	texture := ImageTexture(img, scale)
	if texture == nil {
		return nil, fmt.Errorf("image %s is empty", filename)
	}
	return texture, nil
}
