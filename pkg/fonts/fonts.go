// Package fonts provides the embedded typefaces used by the composer.
//
// The Go fonts ship inside golang.org/x/image, so rendering needs no system
// fonts and produces identical glyphs on every machine. Parsed fonts are
// cached after first use; faces are created per call because a font.Face is
// not safe for concurrent use.
package fonts

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Weight selects a typeface.
type Weight int

const (
	Regular Weight = iota
	Bold
)

// FontFamily is the family name reported for the embedded fonts.
const FontFamily = "Go"

var (
	regular = sync.OnceValues(func() (*truetype.Font, error) { return truetype.Parse(goregular.TTF) })
	bold    = sync.OnceValues(func() (*truetype.Font, error) { return truetype.Parse(gobold.TTF) })
)

// Font returns the parsed typeface for w.
func Font(w Weight) (*truetype.Font, error) {
	if w == Bold {
		return bold()
	}
	return regular()
}

// Face returns a new face of weight w at size pixels. DPI is fixed at 72 so
// that one point equals one pixel.
func Face(w Weight, size float64) (font.Face, error) {
	f, err := Font(w)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}
