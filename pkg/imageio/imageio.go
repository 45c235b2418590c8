// Package imageio converts image files to and from the 8-bit grayscale
// pixel grids the steganographic channel works on.
//
// Color images are reduced to grayscale on load, before any bits are
// embedded or extracted. Stego output is always PNG: the channel assumes
// bit-exact pixel values survive transport, and a lossy encoder such as
// JPEG would destroy the LSB plane it just wrote.
package imageio

import (
	stderrors "errors"
	"image"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/gzrlab/gzrsteg/pkg/errors"
	"github.com/gzrlab/gzrsteg/pkg/steg"
)

// Load reads the image at path and returns it as a grayscale grid.
func Load(path string) (*steg.Grid, error) {
	img, err := imaging.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "image not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode image %s", path)
	}
	return FromImage(img), nil
}

// Decode reads one image from r and returns it as a grayscale grid.
func Decode(r io.Reader) (*steg.Grid, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode image")
	}
	return FromImage(img), nil
}

// FromImage reduces img to grayscale and copies it into a grid.
func FromImage(img image.Image) *steg.Grid {
	gray := imaging.Grayscale(img)
	b := gray.Bounds()

	grid := steg.NewGrid(b.Dx(), b.Dy())
	for i := range grid.Pix {
		// Grayscale output has R == G == B; the red channel is the luma.
		grid.Pix[i] = gray.Pix[i*4]
	}
	return grid
}

// ToImage renders a grid as an 8-bit grayscale image.
func ToImage(g *steg.Grid) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.W, g.H))
	copy(img.Pix, g.Pix)
	return img
}

// Save writes the grid to path as PNG. Targets with a lossy or unknown
// extension are rejected: the stego payload only survives lossless
// round trips.
func Save(path string, g *steg.Grid) error {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".png" {
		return errors.New(errors.ErrCodeInvalidFormat,
			"stego output must be .png, got %q (lossy formats destroy the LSB plane)", ext)
	}
	if err := imaging.Save(ToImage(g), path); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "save %s", path)
	}
	return nil
}

// Encode writes the grid to w as PNG.
func Encode(w io.Writer, g *steg.Grid) error {
	if err := imaging.Encode(w, ToImage(g), imaging.PNG); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return nil
}
