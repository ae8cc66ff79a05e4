package text

import (
	"fmt"
	"image"
	"sync"

	"github.com/hubastard/trellis/engine/core"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// OpenTypeFont is a Font backed by a parsed TrueType/OpenType file.
// Faces are created lazily, one per pixel size.
type OpenTypeFont struct {
	id   FontID
	font *opentype.Font

	mu    sync.Mutex
	faces map[float32]font.Face
	buf   sfnt.Buffer
}

// ParseFont parses TTF/OTF bytes. Failures wrap ErrInvalidFont.
func ParseFont(data []byte) (*OpenTypeFont, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFont, err)
	}
	return &OpenTypeFont{
		id:    NewFontID(),
		font:  f,
		faces: make(map[float32]font.Face),
	}, nil
}

func (f *OpenTypeFont) ID() FontID { return f.id }

// Close releases every cached face.
func (f *OpenTypeFont) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for size, face := range f.faces {
		_ = face.Close()
		delete(f.faces, size)
	}
}

// face must be called with f.mu held.
func (f *OpenTypeFont) face(size float32) font.Face {
	if face, ok := f.faces[size]; ok {
		return face
	}
	face, err := opentype.NewFace(f.font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		core.Logger().Warn("opentype: new face", "size", size, "err", err)
		return nil
	}
	f.faces[size] = face
	return face
}

func (f *OpenTypeFont) Metrics(size float32) Metrics {
	f.mu.Lock()
	defer f.mu.Unlock()
	face := f.face(size)
	if face == nil {
		return Metrics{}
	}
	m := face.Metrics()
	ascent := fixedToFloat(m.Ascent)
	descent := fixedToFloat(m.Descent)
	return Metrics{
		Ascent:  ascent,
		Descent: -descent,
		LineGap: max(fixedToFloat(m.Height)-(ascent+descent), 0),
	}
}

func (f *OpenTypeFont) Glyph(r rune, size float32) GlyphMetrics {
	f.mu.Lock()
	defer f.mu.Unlock()
	face := f.face(size)
	if face == nil {
		return GlyphMetrics{Blank: true}
	}

	var gm GlyphMetrics
	if idx, err := f.font.GlyphIndex(&f.buf, r); err == nil {
		gm.ID = GlyphID(idx)
	}
	bounds, adv, ok := face.GlyphBounds(r)
	gm.Advance = fixedToFloat(adv)
	gm.Bounds = Bounds{
		MinX: fixedToFloat(bounds.Min.X),
		MinY: fixedToFloat(bounds.Min.Y),
		MaxX: fixedToFloat(bounds.Max.X),
		MaxY: fixedToFloat(bounds.Max.Y),
	}
	gm.Blank = !ok || bounds.Min.X >= bounds.Max.X || bounds.Min.Y >= bounds.Max.Y
	return gm
}

func (f *OpenTypeFont) Kern(prev, cur rune, size float32) float32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	face := f.face(size)
	if face == nil {
		return 0
	}
	return fixedToFloat(face.Kern(prev, cur))
}

func (f *OpenTypeFont) Rasterize(r rune, size float32) (*image.Alpha, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	face := f.face(size)
	if face == nil {
		return nil, false
	}
	dr, mask, maskp, _, ok := face.Glyph(fixed.Point26_6{}, r)
	if !ok || dr.Empty() {
		return nil, false
	}
	// The face reuses its mask buffer between calls.
	out := image.NewAlpha(dr)
	draw.Draw(out, dr, mask, maskp, draw.Src)
	return out, true
}

func fixedToFloat(v fixed.Int26_6) float32 { return float32(v) / 64 }
