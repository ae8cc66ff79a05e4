package assets_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/hubastard/trellis/engine/assets"
	"github.com/hubastard/trellis/engine/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestLoadFont(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regular.ttf")
	require.NoError(t, os.WriteFile(path, goregular.TTF, 0o644))

	f, err := assets.LoadFont(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Greater(t, f.Metrics(16).Ascent, float32(0))
}

func TestLoadFontMissing(t *testing.T) {
	_, err := assets.LoadFont(filepath.Join(t.TempDir(), "nope.ttf"))

	var lerr *assets.FontLoadError
	require.True(t, errors.As(err, &lerr))
	assert.Contains(t, lerr.Path, "nope.ttf")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadFontCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.ttf")
	require.NoError(t, os.WriteFile(path, []byte("not a font"), 0o644))

	_, err := assets.LoadFont(path)
	var lerr *assets.FontLoadError
	require.ErrorAs(t, err, &lerr)
	assert.ErrorIs(t, err, text.ErrInvalidFont)
}
