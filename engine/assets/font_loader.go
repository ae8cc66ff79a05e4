// Package assets loads files the engine needs at startup.
package assets

import (
	"fmt"
	"os"

	"github.com/hubastard/trellis/engine/core"
	"github.com/hubastard/trellis/engine/text"
)

// FontLoadError reports a font that could not be read or parsed.
type FontLoadError struct {
	Path string
	Err  error
}

func (e *FontLoadError) Error() string { return fmt.Sprintf("load font %q: %v", e.Path, e.Err) }
func (e *FontLoadError) Unwrap() error { return e.Err }

// LoadFont reads and parses a TTF/OTF file.
func LoadFont(path string) (*text.OpenTypeFont, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &FontLoadError{Path: path, Err: err}
	}
	f, err := text.ParseFont(b)
	if err != nil {
		return nil, &FontLoadError{Path: path, Err: err}
	}
	core.Logger().Debug("font loaded", "path", path, "bytes", len(b))
	return f, nil
}
