package geom

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectContainsIsInclusive(t *testing.T) {
	r := R(10, 20, 100, 50)

	assert.True(t, r.Contains(V2(10, 20)), "top-left corner")
	assert.True(t, r.Contains(V2(110, 70)), "bottom-right corner")
	assert.True(t, r.Contains(V2(60, 45)))
	assert.False(t, r.Contains(V2(9.99, 45)))
	assert.False(t, r.Contains(V2(110.01, 45)))
	assert.False(t, r.Contains(V2(60, 70.5)))
}

func TestRectContainsMatchesIntervals(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		r := R(rng.Float32()*200-100, rng.Float32()*200-100, rng.Float32()*100, rng.Float32()*100)
		p := V2(rng.Float32()*400-200, rng.Float32()*400-200)
		want := p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
		assert.Equal(t, want, r.Contains(p), "rect %+v point %+v", r, p)
	}
}

func TestRectClampsNegativeSize(t *testing.T) {
	r := R(0, 0, -5, 3)
	assert.Equal(t, float32(0), r.Width)
	assert.Equal(t, float32(3), r.Height)
	assert.True(t, r.Empty())
}

func TestPixelsToClipCorners(t *testing.T) {
	assert.Equal(t, V2(-1, 1), PixelsToClip(V2(0, 0), 800, 600))
	assert.Equal(t, V2(1, -1), PixelsToClip(V2(800, 600), 800, 600))
	assert.Equal(t, V2(0, 0), PixelsToClip(V2(400, 300), 800, 600))
}

func TestClipRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const w, h = 1280, 720
	for i := 0; i < 1000; i++ {
		p := V2(rng.Float32()*w, rng.Float32()*h)
		got := ClipToPixels(PixelsToClip(p, w, h), w, h)
		assert.True(t, got.ApproxEq(p, 1e-3), "want %+v got %+v", p, got)
	}
}

func TestTexCoordRoundTrip(t *testing.T) {
	uv := PixelsToTexCoord(V2(128, 256), 512, 512)
	assert.Equal(t, V2(0.25, 0.5), uv)
	assert.Equal(t, V2(128, 256), TexCoordToPixels(uv, 512, 512))
}

func TestVecMax(t *testing.T) {
	assert.Equal(t, V2(3, 7), V2(3, 1).Max(V2(-2, 7)))
}
