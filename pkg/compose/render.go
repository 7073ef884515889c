package compose

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/stc/pkg/fonts"
)

// Renderer paints layout ops onto a gg context.
type Renderer struct {
	dc    *gg.Context
	faces map[Style]font.Face
}

// NewRenderer creates a renderer for canvas with freshly loaded faces.
func NewRenderer(canvas Canvas) (*Renderer, error) {
	faces := make(map[Style]font.Face, 3)
	for style, spec := range map[Style]struct {
		weight fonts.Weight
		size   float64
	}{
		StyleHeading: {fonts.Bold, HeadingSize},
		StyleBody:    {fonts.Regular, BodySize},
		StyleFooter:  {fonts.Regular, FooterSize},
	} {
		face, err := fonts.Face(spec.weight, spec.size)
		if err != nil {
			return nil, err
		}
		faces[style] = face
	}
	return &Renderer{dc: gg.NewContext(canvas.Width, canvas.Height), faces: faces}, nil
}

// Measure implements Measurer using the renderer's faces.
func (r *Renderer) Measure(style Style, s string) float64 {
	r.dc.SetFontFace(r.faces[style])
	w, _ := r.dc.MeasureString(s)
	return w
}

// Paint draws ops in order and returns the resulting image.
func (r *Renderer) Paint(ops []Op) *image.RGBA {
	for _, op := range ops {
		switch op.Kind {
		case OpFill:
			r.dc.SetColor(op.Color)
			r.dc.DrawRectangle(0, 0, op.W, op.H)
			r.dc.Fill()
		case OpText:
			r.drawText(op)
		case OpImage:
			logo := imaging.Resize(op.Image, int(op.W), int(op.H), imaging.Lanczos)
			r.dc.DrawImage(logo, int(op.X), int(op.Y))
		}
	}
	return r.dc.Image().(*image.RGBA)
}

// drawText places the top of the line at op.Y; gg positions text by its
// baseline.
func (r *Renderer) drawText(op Op) {
	face := r.faces[op.Style]
	r.dc.SetFontFace(face)
	r.dc.SetColor(op.Color)
	ascent := float64(face.Metrics().Ascent.Round())
	r.dc.DrawString(op.Text, op.X, op.Y+ascent)
}

// Close releases the font faces.
func (r *Renderer) Close() error {
	for _, f := range r.faces {
		_ = f.Close()
	}
	return nil
}

var _ Measurer = (*Renderer)(nil)

