package pgm

import (
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"math"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder

	"github.com/ironsheep/image8bit/internal/raster"
)

// GrayMethod selects how color pixels are reduced to a gray level.
type GrayMethod string

const (
	// LumaBT601 weights RGB with the ITU-R BT.601 luma coefficients.
	LumaBT601 GrayMethod = "bt601"

	// LightnessLab uses the CIE L* lightness of the color.
	LightnessLab GrayMethod = "lab"
)

// Import decodes a PNG, JPEG, GIF, BMP or TIFF file and converts it to an
// 8-bit gray image with maxval 255. EXIF orientation is applied.
func Import(path string, method GrayMethod) (*raster.Image, error) {
	src, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode image")
	}
	return FromImage(src, method)
}

// FromImage converts any image.Image to an 8-bit gray image with maxval 255.
// An empty method means LumaBT601. Alpha is ignored, except that fully
// transparent pixels become black with LightnessLab.
func FromImage(src image.Image, method GrayMethod) (*raster.Image, error) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if err := raster.CheckDimensions(w, h); err != nil {
		return nil, err
	}
	pix := make([]uint8, w*h)

	switch method {
	case LumaBT601, "":
		gray := imaging.Grayscale(src)
		for y := 0; y < h; y++ {
			row := gray.Pix[y*gray.Stride:]
			for x := 0; x < w; x++ {
				pix[y*w+x] = row[x*4]
			}
		}
	case LightnessLab:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c, ok := colorful.MakeColor(src.At(b.Min.X+x, b.Min.Y+y))
				if !ok {
					continue
				}
				l, _, _ := c.Lab()
				pix[y*w+x] = uint8(math.Round(math.Max(0, math.Min(1, l)) * 255))
			}
		}
	default:
		return nil, errors.Errorf("unknown gray method: %s", method)
	}

	return raster.FromPixels(w, h, raster.PixMax, pix)
}

// ToGray returns img as an *image.Gray, rescaling levels from [0, maxval]
// to [0, 255]. Levels above maxval saturate at 255.
func ToGray(img *raster.Image) *image.Gray {
	w, h := img.Width(), img.Height()
	maxval := uint32(img.Maxval())
	out := image.NewGray(image.Rect(0, 0, w, h))
	for i, p := range img.AppendPixels(nil) {
		out.Pix[i] = uint8(min(255, (uint32(p)*255+maxval/2)/maxval))
	}
	return out
}

// Export writes img as PNG or JPEG according to the extension of path.
// A scale other than 0 or 1 resizes the output with a Lanczos filter. A
// negative scale, or one that leaves a non-empty image without width or
// height, is an error.
func Export(img *raster.Image, path string, scale float64) error {
	encoder, err := encoderFor(path)
	if err != nil {
		return err
	}

	if scale < 0 || math.IsNaN(scale) {
		return errors.Errorf("invalid export scale %g", scale)
	}

	var out image.Image = ToGray(img)
	if scale > 0 && scale != 1 {
		w := int(float64(img.Width()) * scale)
		h := int(float64(img.Height()) * scale)
		if (w == 0 && img.Width() > 0) || (h == 0 && img.Height() > 0) {
			return errors.Errorf("export scale %g shrinks %dx%d image to %dx%d",
				scale, img.Width(), img.Height(), w, h)
		}
		out = imaging.Resize(out, w, h, imaging.Lanczos)
	}

	if err := imgio.Save(path, out, encoder); err != nil {
		return errors.Wrapf(err, "export %s", path)
	}
	return nil
}

func encoderFor(path string) (imgio.Encoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return imgio.PNGEncoder(), nil
	case ".jpg", ".jpeg":
		return imgio.JPEGEncoder(95), nil
	default:
		return nil, errors.Errorf("unsupported export format: %q", filepath.Ext(path))
	}
}
