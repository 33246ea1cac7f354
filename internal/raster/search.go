package raster

// MatchSubImage reports whether sub matches the region of img whose top-left
// corner is (x, y). (x, y) must be a valid position of img. A sub that does
// not fit at (x, y) never matches.
func (img *Image) MatchSubImage(x, y int, sub *Image) bool {
	assertf(img != nil && sub != nil, "nil image")
	assertf(img.ValidPos(x, y), "position (%d,%d) outside %dx%d image", x, y, img.width, img.height)
	if !img.ValidRect(x, y, sub.width, sub.height) {
		return false
	}
	for j := 0; j < sub.height; j++ {
		for i := 0; i < sub.width; i++ {
			if img.Pixel(x+i, y+j) != sub.Pixel(i, j) {
				return false
			}
		}
	}
	return true
}

// LocateSubImage searches img for sub in row-major order and returns the
// first matching position. An empty sub matches at (0, 0).
func (img *Image) LocateSubImage(sub *Image) (int, int, bool) {
	assertf(img != nil && sub != nil, "nil image")
	if sub.width > img.width || sub.height > img.height {
		return 0, 0, false
	}
	if sub.width == 0 || sub.height == 0 {
		return 0, 0, true
	}
	for y := 0; y <= img.height-sub.height; y++ {
		for x := 0; x <= img.width-sub.width; x++ {
			if img.MatchSubImage(x, y, sub) {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}
