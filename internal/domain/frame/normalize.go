// Package frame computes the aspect normalization applied to every clip
// before it can join a vertical reel.
package frame

import (
	"fmt"
	"math"
)

// Mode says how a frame reaches the 9:16 target ratio.
type Mode int

const (
	// Pass leaves the frame untouched; it is already 9:16.
	Pass Mode = iota
	// Crop center-crops the width down to height*9/16.
	Crop
	// Pad center-pads the height up to width*16/9 with black bars.
	Pad
)

// Plan is a concrete crop/pad decision for one frame size.
type Plan struct {
	Mode   Mode
	Width  int // frame width after the operation
	Height int // frame height after the operation
	X      int // crop x offset (Crop) — always 0 otherwise
	Y      int // pad y offset (Pad) — always 0 otherwise
}

// Normalize decides how a width x height frame becomes 9:16.
// The crop width rounds down so the crop never exceeds the source; the pad
// height rounds up so the source frame always fits inside the padded canvas.
func Normalize(width, height int) Plan {
	ratio := float64(width) / float64(height)
	target := 9.0 / 16.0

	switch {
	case ratio > target:
		newWidth := height * 9 / 16
		return Plan{
			Mode:   Crop,
			Width:  newWidth,
			Height: height,
			X:      (width - newWidth) / 2,
		}
	case ratio < target:
		newHeight := int(math.Ceil(float64(width) * 16 / 9))
		return Plan{
			Mode:   Pad,
			Width:  width,
			Height: newHeight,
			Y:      (newHeight - height) / 2,
		}
	default:
		return Plan{Mode: Pass, Width: width, Height: height}
	}
}

// FilterExpr renders the plan as a single video-filter stage reading from
// inLabel and writing to outLabel.
func (p Plan) FilterExpr(inLabel, outLabel string) string {
	switch p.Mode {
	case Crop:
		return fmt.Sprintf("[%s]crop=%d:%d:%d:0[%s]", inLabel, p.Width, p.Height, p.X, outLabel)
	case Pad:
		return fmt.Sprintf("[%s]pad=%d:%d:0:%d:black[%s]", inLabel, p.Width, p.Height, p.Y, outLabel)
	default:
		return fmt.Sprintf("[%s]copy[%s]", inLabel, outLabel)
	}
}
