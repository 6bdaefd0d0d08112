package capture

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOptionsNormalize(t *testing.T) {
	o := Options{URL: "http://127.0.0.1:8080/", OutputPath: "out.png"}
	require.NoError(t, o.normalize())
	require.Equal(t, DefaultWidth, o.Width)
	require.Equal(t, DefaultHeight, o.Height)
	require.Equal(t, DefaultTimeout, o.Timeout)

	o = Options{URL: "u", OutputPath: "p", Width: 800, Height: 600, Timeout: time.Second}
	require.NoError(t, o.normalize())
	require.Equal(t, 800, o.Width)
	require.Equal(t, time.Second, o.Timeout)
}

func TestCaptureRequiresURLAndOutput(t *testing.T) {
	err := CapturePagePNG(context.Background(), Options{OutputPath: "out.png"})
	require.EqualError(t, err, "capture: URL is required")

	err = CapturePagePNG(context.Background(), Options{URL: "http://127.0.0.1:8080/"})
	require.EqualError(t, err, "capture: OutputPath is required")
}
