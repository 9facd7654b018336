// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package mnist

import (
	"image"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// Image is a grayscale view over the pixels of one example.
// 0 is black (the background) and 255 is white (the digit color).
type Image struct {
	// Pix holds Rows*Cols intensities, row-major. It is shared with the Dataset.
	Pix        []byte
	Rows, Cols int
}

var _ image.Image = (*Image)(nil)

// ColorModel implements the image.Image interface.
func (img *Image) ColorModel() color.Model {
	return color.GrayModel
}

// Bounds implements the image.Image interface.
func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.Cols, img.Rows)
}

// At implements the image.Image interface.
func (img *Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(img.Bounds())) {
		return color.Gray{}
	}
	return color.Gray{Y: img.Pix[y*img.Cols+x]}
}

// Sprint renders the image as text: a line with the label, followed by one line per row,
// with "##" for pixels that are set and "__" for background pixels.
func Sprint(img *Image, label byte) string {
	var sb strings.Builder
	_ = Fprint(&sb, img, label) // strings.Builder doesn't fail.
	return sb.String()
}

// Fprint writes the rendering of Sprint to w.
func Fprint(w io.Writer, img *Image, label byte) error {
	var sb strings.Builder
	sb.Grow((img.Rows + 1) * (2*img.Cols + 1))
	sb.WriteString("Label: ")
	sb.WriteString(strconv.Itoa(int(label)))
	sb.WriteByte('\n')
	for row := range img.Rows {
		for col := range img.Cols {
			if img.Pix[row*img.Cols+col] == 0 {
				sb.WriteString("__")
			} else {
				sb.WriteString("##")
			}
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return errors.Wrap(err, "failed to write image")
}

// SavePNG saves the image scaled by the given integer factor (nearest neighbour, so
// pixels stay sharp). The format is taken from the path extension (e.g. ".png").
func SavePNG(img *Image, path string, scale int) error {
	if scale < 1 {
		return errors.Errorf("SavePNG: invalid scale %d", scale)
	}
	scaled := imaging.Resize(img, img.Cols*scale, img.Rows*scale, imaging.NearestNeighbor)
	if err := imaging.Save(scaled, path); err != nil {
		return errors.Wrapf(err, "failed to save image to %q", path)
	}
	return nil
}
