package compose

import (
	"image"
	"image/color"
	"math"
	"strings"
	"unicode"

	"github.com/matzehuels/stc/pkg/selection"
)

// Layout constants, in pixels.
const (
	Margin        = 30
	LineHeight    = 22
	FooterReserve = 40
	HeadingOffset = 20
	LogoHeight    = 60
	MaxItems      = 10

	HeadingSize = 18
	BodySize    = 16
	FooterSize  = 20
)

// TextColor is the colour of all text.
var TextColor = color.RGBA{0x33, 0x33, 0x33, 0xff}

// Canvas is the size of the output image.
type Canvas struct {
	Width  int `toml:"width" json:"width"`
	Height int `toml:"height" json:"height"`
}

// DefaultCanvas is a square 1080×1080 canvas.
func DefaultCanvas() Canvas { return Canvas{Width: 1080, Height: 1080} }

// Style selects the font a text op is drawn with.
type Style int

const (
	StyleHeading Style = iota
	StyleBody
	StyleFooter
)

// OpKind distinguishes draw operations.
type OpKind int

const (
	OpFill OpKind = iota
	OpText
	OpImage
)

// Op is one draw operation. Text ops are positioned by the top of the line.
type Op struct {
	Kind  OpKind
	Style Style
	Text  string
	X, Y  float64
	W, H  float64
	Color color.Color
	Image image.Image
}

// Measurer reports the rendered width of a string in a given style.
type Measurer interface {
	Measure(style Style, s string) float64
}

// Scene is the input to Layout.
type Scene struct {
	Items      selection.Set
	Background color.Color
	Footer     string
	Logo       image.Image
}

// Layout computes the draw operations for scene on canvas. It is a pure
// function of its inputs.
func Layout(scene Scene, canvas Canvas, m Measurer) []Op {
	w, h := float64(canvas.Width), float64(canvas.Height)
	ops := []Op{{Kind: OpFill, W: w, H: h, Color: scene.Background}}

	items := scene.Items.First(MaxItems)
	if n := len(items); n > 0 {
		reserve := 0.0
		if scene.Footer != "" {
			reserve = FooterReserve
		}
		slot := (h - 2*Margin - reserve) / float64(n)
		maxWidth := w - 2*Margin

		for i, item := range items {
			y := Margin + float64(i)*slot
			ops = append(ops, textOp(StyleHeading, item.Type.Heading(), Margin, y))

			y += HeadingOffset
			for _, line := range Wrap(canvasText(item.Text), maxWidth, styleMeasurer{m, StyleBody}) {
				ops = append(ops, textOp(StyleBody, line, Margin, y))
				y += LineHeight
			}
		}
	}

	if scene.Footer != "" {
		ops = append(ops, textOp(StyleFooter, canvasText(scene.Footer), Margin, h-FooterReserve))
	}

	if scene.Logo != nil {
		lw, lh := logoSize(scene.Logo.Bounds(), w-2*Margin)
		ops = append(ops, Op{
			Kind:  OpImage,
			X:     w - lw - Margin,
			Y:     h - lh - Margin,
			W:     lw,
			H:     lh,
			Image: scene.Logo,
		})
	}
	return ops
}

func textOp(style Style, s string, x, y float64) Op {
	return Op{Kind: OpText, Style: style, Text: s, X: x, Y: y, Color: TextColor}
}

// logoSize scales b to LogoHeight, preserving the aspect ratio. Logos wider
// than maxWidth at that height are scaled down to maxWidth instead.
func logoSize(b image.Rectangle, maxWidth float64) (float64, float64) {
	if b.Dy() == 0 {
		return 0, 0
	}
	ratio := float64(b.Dx()) / float64(b.Dy())
	lw := math.Round(LogoHeight * ratio)
	if lw <= maxWidth {
		return lw, LogoHeight
	}
	return maxWidth, math.Max(1, math.Round(maxWidth/ratio))
}

// canvasText replaces every whitespace character with a plain space, the
// way a 2D canvas treats text passed to fillText.
func canvasText(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, s)
}

type styleMeasurer struct {
	m     Measurer
	style Style
}

func (s styleMeasurer) MeasureString(text string) float64 {
	return s.m.Measure(s.style, text)
}
