package qimdwt

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/bmp"
)

// grayPixels converts an image to a float64 grayscale grid using the
// standard luma weights (the same conversion the reference covers are
// prepared with).
func grayPixels(img image.Image) [][]float64 {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	pixels := make([][]float64, height)
	for y := range height {
		pixels[y] = make([]float64, width)
		for x := range width {
			g := color.GrayModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray)
			pixels[y][x] = float64(g.Y)
		}
	}
	return pixels
}

// grayImage converts a float64 grid to an 8-bit grayscale image,
// rounding and clamping each sample to [0, 255]. This quantization is
// one of the noise sources the QIM step must absorb.
func grayImage(pixels [][]float64) *image.Gray {
	height := len(pixels)
	width := 0
	if height > 0 {
		width = len(pixels[0])
	}

	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			v := math.Round(pixels[y][x])
			if v < 0 {
				v = 0
			}
			if v > 255 {
				v = 255
			}
			img.SetGray(x, y, color.Gray{Y: uint8(v)})
		}
	}
	return img
}

// DecodeImage reads a cover or stego image from r. PNG and BMP are
// recognized; both are lossless, which the embedding protocol requires
// of any persisted stego artifact.
func DecodeImage(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	return img, err
}

// EncodePNG writes img to w as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// EncodeBMP writes img to w as BMP.
func EncodeBMP(w io.Writer, img image.Image) error {
	return bmp.Encode(w, img)
}
