package capture

import (
	"github.com/matzehuels/stc/pkg/errors"
	"github.com/matzehuels/stc/pkg/selection"
)

// Decoration classes.
const (
	HighlightClass = "stc-highlight"
	HoverClass     = "stc-hover"
)

// Selectors lists the CSS selectors that make an element capturable in each
// mode.
type Selectors struct {
	Testimonial []string `toml:"testimonial"`
	Member      []string `toml:"member"`
}

// DefaultSelectors returns the selectors for the community platform's post,
// comment and member markup.
func DefaultSelectors() Selectors {
	return Selectors{
		Testimonial: []string{
			"div.post",
			"div.comment",
			`div[data-testid="post"]`,
			`div[data-testid="comment"]`,
			"article",
		},
		Member: []string{
			"div.member",
			`div[data-testid="member"]`,
			`div[data-test-id="member"]`,
			"li.member",
			`div[class*="member"]`,
		},
	}
}

// For returns the selectors of mode m, or nil for ModeNone.
func (s Selectors) For(m selection.Mode) []string {
	switch m {
	case selection.ModeTestimonial:
		return s.Testimonial
	case selection.ModeMember:
		return s.Member
	}
	return nil
}

// WithDefaults fills empty lists from DefaultSelectors.
func (s Selectors) WithDefaults() Selectors {
	def := DefaultSelectors()
	if len(s.Testimonial) == 0 {
		s.Testimonial = def.Testimonial
	}
	if len(s.Member) == 0 {
		s.Member = def.Member
	}
	return s
}

// Validate checks that every selector compiles.
func (s Selectors) Validate() error {
	for _, list := range [][]string{s.Testimonial, s.Member} {
		for _, sel := range list {
			if err := errors.ValidateSelector(sel); err != nil {
				return err
			}
		}
	}
	return nil
}
