package geom

// PixelsToClip maps a pixel position on a w×h surface to clip space ([-1,1], y up).
func PixelsToClip(p Vec2, w, h float32) Vec2 {
	return Vec2{X: 2*p.X/w - 1, Y: 1 - 2*p.Y/h}
}

// ClipToPixels is the inverse of PixelsToClip.
func ClipToPixels(c Vec2, w, h float32) Vec2 {
	return Vec2{X: (c.X + 1) * w / 2, Y: (1 - c.Y) * h / 2}
}

// PixelsToTexCoord maps a texel position in a w×h texture to UV space ([0,1], y down).
func PixelsToTexCoord(p Vec2, w, h float32) Vec2 {
	return Vec2{X: p.X / w, Y: p.Y / h}
}

// TexCoordToPixels is the inverse of PixelsToTexCoord.
func TexCoordToPixels(uv Vec2, w, h float32) Vec2 {
	return Vec2{X: uv.X * w, Y: uv.Y * h}
}
