package renderer

import (
	"image"
)

// ToImage converts a pixel map to an RGBA image. Pixels missing from the map stay transparent black.
func ToImage(pixels PixelMap, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for pixel, color := range pixels {
		if pixel.X < 0 || pixel.X >= width || pixel.Y < 0 || pixel.Y >= height {
			continue
		}
		img.SetRGBA(pixel.X, pixel.Y, color.ToRGBA())
	}
	return img
}
