package raster

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	img := newUniformImage(t, 4, 3, 255, 9)
	require.NoError(t, Blur(img, 1, 1))
	assert.Contains(t, buf.String(), "msg=blur")
	assert.Contains(t, buf.String(), "width=4")

	limitPixels(t, 4)
	_, err := New(3, 3, 255)
	require.ErrorIs(t, err, ErrResourceExhausted)
	assert.Contains(t, buf.String(), "allocation refused")
}

func TestSetLogger_NilRestoresSilence(t *testing.T) {
	SetLogger(nil)
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}
