package raster

// Geometric transformations return a new image and leave the source
// untouched. Like New, they fail only on allocation.

// Rotate returns the image rotated 90 degrees clockwise. The result is
// height pixels wide and width pixels tall.
func (img *Image) Rotate() (*Image, error) {
	assertf(img != nil, "nil image")
	dst, err := New(img.height, img.width, img.maxval)
	if err != nil {
		return nil, err
	}
	for y := 0; y < img.height; y++ {
		for x := 0; x < img.width; x++ {
			dst.SetPixel(img.height-1-y, x, img.Pixel(x, y))
		}
	}
	return dst, nil
}

// Mirror returns the image flipped left-right.
func (img *Image) Mirror() (*Image, error) {
	assertf(img != nil, "nil image")
	dst, err := New(img.width, img.height, img.maxval)
	if err != nil {
		return nil, err
	}
	for y := 0; y < img.height; y++ {
		for x := 0; x < img.width; x++ {
			dst.SetPixel(img.width-1-x, y, img.Pixel(x, y))
		}
	}
	return dst, nil
}

// Crop returns a copy of the w x h rectangle at (x, y).
// The rectangle must lie inside the image.
func (img *Image) Crop(x, y, w, h int) (*Image, error) {
	assertf(img != nil, "nil image")
	assertf(img.ValidRect(x, y, w, h), "crop rectangle %dx%d at (%d,%d) outside %dx%d image",
		w, h, x, y, img.width, img.height)
	dst, err := New(w, h, img.maxval)
	if err != nil {
		return nil, err
	}
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			dst.SetPixel(i, j, img.Pixel(x+i, y+j))
		}
	}
	return dst, nil
}

// Paste copies src into img with its top-left corner at (x, y).
// src must fit inside img at that position.
func (img *Image) Paste(x, y int, src *Image) {
	assertf(img != nil && src != nil, "nil image")
	assertf(img.ValidRect(x, y, src.width, src.height), "%dx%d image does not fit at (%d,%d)",
		src.width, src.height, x, y)
	for j := 0; j < src.height; j++ {
		for i := 0; i < src.width; i++ {
			img.SetPixel(x+i, y+j, src.Pixel(i, j))
		}
	}
}

// Blend mixes src into img at (x, y): each level becomes
// (1-alpha)*dst + alpha*src, rounded half up and saturated to [0, maxval].
// alpha is usually in [0, 1]; other values give over- or under-exposure.
// src must fit inside img at that position.
func (img *Image) Blend(x, y int, src *Image, alpha float64) {
	assertf(img != nil && src != nil, "nil image")
	assertf(img.ValidRect(x, y, src.width, src.height), "%dx%d image does not fit at (%d,%d)",
		src.width, src.height, x, y)
	for j := 0; j < src.height; j++ {
		for i := 0; i < src.width; i++ {
			v := (1-alpha)*float64(img.Pixel(x+i, y+j)) + alpha*float64(src.Pixel(i, j))
			img.SetPixel(x+i, y+j, saturate(v, img.maxval))
		}
	}
}
