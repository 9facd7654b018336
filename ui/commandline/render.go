// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package commandline

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gomlx/idxmnist/pkg/mnist"
	"github.com/muesli/termenv"
)

var exampleStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color(tableBorderColor)).
	Padding(0, 1)

// RenderExample renders the image and label inside a border.
//
// If out supports colors, pixels are shaded by their intensity. Otherwise it uses
// the plain mnist.Sprint rendering.
func RenderExample(out *termenv.Output, img *mnist.Image, label byte) string {
	if out == nil || out.Profile == termenv.Ascii {
		return exampleStyle.Render(strings.TrimSuffix(mnist.Sprint(img, label), "\n"))
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Label: %d", label)
	for row := range img.Rows {
		sb.WriteByte('\n')
		for col := range img.Cols {
			v := img.Pix[row*img.Cols+col]
			if v == 0 {
				sb.WriteString("  ")
				continue
			}
			shade := out.Color(fmt.Sprintf("#%02x%02x%02x", v, v, v))
			sb.WriteString(out.String("██").Foreground(shade).String())
		}
	}
	return exampleStyle.Render(sb.String())
}
