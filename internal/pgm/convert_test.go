package pgm

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createPatternImage creates an image with different colors in each quadrant.
func createPatternImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			if x < width/2 && y < height/2 {
				c = color.RGBA{255, 0, 0, 255} // Red top-left
			} else if x >= width/2 && y < height/2 {
				c = color.RGBA{0, 255, 0, 255} // Green top-right
			} else if x < width/2 && y >= height/2 {
				c = color.RGBA{0, 0, 255, 255} // Blue bottom-left
			} else {
				c = color.RGBA{255, 255, 255, 255} // White bottom-right
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestFromImage_BT601(t *testing.T) {
	img, err := FromImage(createPatternImage(4, 4), LumaBT601)
	require.NoError(t, err)

	assert.Equal(t, 4, img.Width())
	assert.Equal(t, uint8(255), img.Maxval())
	assert.Equal(t, uint8(76), img.Pixel(0, 0))
	assert.Equal(t, uint8(150), img.Pixel(3, 0))
	assert.Equal(t, uint8(29), img.Pixel(0, 3))
	assert.Equal(t, uint8(255), img.Pixel(3, 3))
}

func TestFromImage_DefaultMethodIsBT601(t *testing.T) {
	src := createPatternImage(2, 2)
	a, err := FromImage(src, "")
	require.NoError(t, err)
	b, err := FromImage(src, LumaBT601)
	require.NoError(t, err)
	assert.Equal(t, b.AppendPixels(nil), a.AppendPixels(nil))
}

func TestFromImage_Lab(t *testing.T) {
	src := createPatternImage(4, 4)
	src.Set(1, 1, color.RGBA{0, 0, 0, 255})

	img, err := FromImage(src, LightnessLab)
	require.NoError(t, err)

	assert.Equal(t, uint8(255), img.Pixel(3, 3), "white")
	assert.Equal(t, uint8(0), img.Pixel(1, 1), "black")
	assert.InDelta(t, 136, int(img.Pixel(0, 0)), 1, "red L* is about 53")
	// Blue is darker than red, which is darker than green.
	assert.Less(t, img.Pixel(0, 3), img.Pixel(0, 0))
	assert.Less(t, img.Pixel(0, 0), img.Pixel(3, 0))
}

func TestFromImage_LabTransparentIsBlack(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.Set(0, 0, color.NRGBA{255, 255, 255, 0})
	src.Set(1, 0, color.NRGBA{255, 255, 255, 255})

	img, err := FromImage(src, LightnessLab)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 255}, img.AppendPixels(nil))
}

func TestFromImage_OffsetBounds(t *testing.T) {
	src := createPatternImage(4, 4).SubImage(image.Rect(2, 2, 4, 4))

	img, err := FromImage(src, LightnessLab)
	require.NoError(t, err)
	assert.Equal(t, 2, img.Width())
	assert.Equal(t, []byte{255, 255, 255, 255}, img.AppendPixels(nil))
}

func TestFromImage_UnknownMethod(t *testing.T) {
	_, err := FromImage(createPatternImage(2, 2), GrayMethod("hsv"))
	assert.Error(t, err)
}

func TestImport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pattern.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, createPatternImage(6, 4)))
	require.NoError(t, f.Close())

	img, err := Import(path, LumaBT601)
	require.NoError(t, err)
	assert.Equal(t, 6, img.Width())
	assert.Equal(t, 4, img.Height())
	assert.Equal(t, uint8(255), img.Pixel(5, 3))
}

func TestImport_NonExistent(t *testing.T) {
	_, err := Import("/nonexistent/path/to/image.png", LumaBT601)
	assert.Error(t, err)
}

func TestToGray_Rescales(t *testing.T) {
	img := newTestImageLevels(t, 3, 1, 100, 0, 50, 100)

	gray := ToGray(img)
	assert.Equal(t, image.Rect(0, 0, 3, 1), gray.Bounds())
	assert.Equal(t, []byte{0, 128, 255}, gray.Pix)
}

func TestExport_PNG(t *testing.T) {
	img := newTestImageLevels(t, 2, 2, 255, 10, 20, 30, 40)
	path := filepath.Join(t.TempDir(), "out.png")

	require.NoError(t, Export(img, path, 1))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 2, 2), decoded.Bounds())
	r, _, _, _ := decoded.At(1, 1).RGBA()
	assert.Equal(t, uint32(40), r>>8)
}

func TestExport_Scaled(t *testing.T) {
	img := newGradient(t, 8, 4, 255)
	path := filepath.Join(t.TempDir(), "out.jpg")

	require.NoError(t, Export(img, path, 0.5))

	back, err := Import(path, LumaBT601)
	require.NoError(t, err)
	assert.Equal(t, 4, back.Width())
	assert.Equal(t, 2, back.Height())
}

func TestExport_UnsupportedFormat(t *testing.T) {
	img := newGradient(t, 2, 2, 255)
	err := Export(img, filepath.Join(t.TempDir(), "out.webp"), 1)
	assert.Error(t, err)
}

func TestExport_ScaleTooSmall(t *testing.T) {
	img := newGradient(t, 8, 4, 255)
	path := filepath.Join(t.TempDir(), "out.png")

	err := Export(img, path, 0.1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shrinks 8x4 image to 0x0")

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no file should be written")
}

func TestExport_NegativeScale(t *testing.T) {
	img := newGradient(t, 2, 2, 255)
	err := Export(img, filepath.Join(t.TempDir(), "out.png"), -2)
	assert.Error(t, err)
}
