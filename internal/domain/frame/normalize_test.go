package frame

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize_WideFrameCropsWidthCentered(t *testing.T) {
	t.Parallel()

	p := Normalize(1920, 1080)
	require.Equal(t, Crop, p.Mode)
	require.Equal(t, 607, p.Width) // 1080*9/16 rounded down
	require.Equal(t, 1080, p.Height)
	require.Equal(t, 656, p.X) // (1920-607)/2
	require.Equal(t, "[0:v]crop=607:1080:656:0[framed]", p.FilterExpr("0:v", "framed"))
}

func TestNormalize_VerticalFramePassesThrough(t *testing.T) {
	t.Parallel()

	p := Normalize(1080, 1920)
	require.Equal(t, Pass, p.Mode)
	require.Equal(t, 1080, p.Width)
	require.Equal(t, 1920, p.Height)
	require.Equal(t, "[0:v]copy[framed]", p.FilterExpr("0:v", "framed"))
}

func TestNormalize_SquareFramePadsHeightCentered(t *testing.T) {
	t.Parallel()

	p := Normalize(1000, 1000)
	require.Equal(t, Pad, p.Mode)
	require.Equal(t, 1000, p.Width)
	require.Equal(t, 1778, p.Height) // 1000*16/9 rounded up
	require.Equal(t, 389, p.Y)       // (1778-1000)/2
	require.Equal(t, "[0:v]pad=1000:1778:0:389:black[framed]", p.FilterExpr("0:v", "framed"))
}
