package pgm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/ironsheep/image8bit/internal/raster"
)

var (
	// ErrInvalidFormat is returned when the magic number is not "P5".
	ErrInvalidFormat = errors.New("invalid file format")

	// ErrInvalidHeader is returned when width, height or maxval cannot be
	// parsed or are out of range.
	ErrInvalidHeader = errors.New("invalid header")

	// ErrShortPixelData is returned when the file ends before width*height
	// pixel bytes have been read.
	ErrShortPixelData = errors.New("short pixel data")
)

// Decode reads a binary (P5) PGM image with at most 8 bits per pixel.
//
// Header fields are separated by whitespace and may be preceded by comment
// lines starting with '#'. Exactly one whitespace byte separates maxval from
// the pixel block.
func Decode(r io.Reader) (*raster.Image, error) {
	br := bufio.NewReader(r)

	magic := make([]byte, 2)
	if _, err := io.ReadFull(br, magic); err != nil || string(magic) != "P5" {
		return nil, ErrInvalidFormat
	}
	if next, err := br.Peek(1); err != nil || !(isSpace(next[0]) || next[0] == '#') {
		return nil, ErrInvalidFormat
	}

	width, err := readField(br, "width")
	if err != nil {
		return nil, err
	}
	height, err := readField(br, "height")
	if err != nil {
		return nil, err
	}
	maxval, err := readField(br, "maxval")
	if err != nil {
		return nil, err
	}
	if maxval <= 0 || maxval > raster.PixMax {
		return nil, errors.Wrapf(ErrInvalidHeader, "maxval %d", maxval)
	}

	c, err := br.ReadByte()
	if err != nil || !isSpace(c) {
		return nil, errors.Wrap(ErrInvalidHeader, "whitespace expected after maxval")
	}

	if err := raster.CheckDimensions(width, height); err != nil {
		return nil, err
	}
	pix := make([]byte, width*height)
	if n, err := io.ReadFull(br, pix); err != nil {
		return nil, errors.Wrapf(ErrShortPixelData, "read %d of %d bytes", n, len(pix))
	}

	return raster.FromPixels(width, height, uint8(maxval), pix)
}

// readField skips whitespace and comment lines and parses a non-negative
// decimal number.
func readField(br *bufio.Reader, name string) (int, error) {
	if err := skipSpaceAndComments(br); err != nil {
		return 0, errors.Wrapf(ErrInvalidHeader, "%s: %v", name, err)
	}

	n, digits := 0, 0
	for {
		c, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, errors.Wrapf(ErrInvalidHeader, "%s: %v", name, err)
		}
		if c < '0' || c > '9' {
			if err := br.UnreadByte(); err != nil {
				return 0, err
			}
			break
		}
		if n > (1<<31)/10 {
			return 0, errors.Wrapf(ErrInvalidHeader, "%s too large", name)
		}
		n = n*10 + int(c-'0')
		digits++
	}
	if digits == 0 {
		return 0, errors.Wrapf(ErrInvalidHeader, "%s is not a number", name)
	}
	return n, nil
}

func skipSpaceAndComments(br *bufio.Reader) error {
	for {
		c, err := br.ReadByte()
		if err != nil {
			return err
		}
		switch {
		case isSpace(c):
		case c == '#':
			if _, err := br.ReadString('\n'); err != nil {
				return err
			}
		default:
			return br.UnreadByte()
		}
	}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// Encode writes img as a binary (P5) PGM image.
func Encode(w io.Writer, img *raster.Image) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P5\n%d %d\n%d\n", img.Width(), img.Height(), img.Maxval()); err != nil {
		return errors.Wrap(err, "writing header failed")
	}
	if _, err := bw.Write(img.AppendPixels(nil)); err != nil {
		return errors.Wrap(err, "writing pixels failed")
	}
	return errors.Wrap(bw.Flush(), "writing pixels failed")
}

// Load reads a PGM file from disk.
func Load(path string) (*raster.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open failed")
	}
	defer f.Close()

	img, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return img, nil
}

// Save writes img to path. The data goes to a temporary file in the same
// directory that is renamed into place, so a failed save never leaves a
// truncated image behind.
func Save(img *raster.Image, path string) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return errors.Wrap(err, "open failed")
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := Encode(tmp, img); err != nil {
		return errors.Wrapf(err, "save %s", path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "save %s", path)
	}
	return errors.Wrapf(os.Rename(tmp.Name(), path), "save %s", path)
}
