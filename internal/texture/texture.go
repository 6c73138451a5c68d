// Package texture draws the grid test texture used for the textured demo
// cube: a white square with a black grid, red and blue diagonals and four
// coloured squares along the main diagonal.
package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/pkg/errors"
)

const (
	Size       = 256
	GridStep   = 32
	SquareSize = GridStep * 2

	MIMEType = "image/png"
)

var (
	red    = color.RGBA{R: 255, A: 255}
	green  = color.RGBA{G: 128, A: 255}
	blue   = color.RGBA{B: 255, A: 255}
	yellow = color.RGBA{R: 255, G: 255, A: 255}

	squareColors = []color.RGBA{red, green, blue, yellow}
)

// Generate draws the texture.
func Generate() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, Size, Size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	for i := 0; i < Size; i += GridStep {
		for j := 0; j < Size; j++ {
			img.SetRGBA(i, j, color.RGBA{A: 255})
			img.SetRGBA(j, i, color.RGBA{A: 255})
		}
	}

	for i := 0; i < Size; i++ {
		img.SetRGBA(i, i, red)
		img.SetRGBA(i+1, i, red)
		img.SetRGBA(Size-1-i, i, blue)
		img.SetRGBA(Size-2-i, i, blue)
	}

	for i, c := range squareColors {
		at := i * SquareSize
		r := image.Rect(at, at, at+SquareSize, at+SquareSize)
		draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
	}
	return img
}

// PNG returns the texture encoded as PNG.
func PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, Generate()); err != nil {
		return nil, errors.Wrap(err, "encoding test texture")
	}
	return buf.Bytes(), nil
}
