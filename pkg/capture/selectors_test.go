package capture

import (
	"testing"

	"github.com/matzehuels/stc/pkg/errors"
	"github.com/matzehuels/stc/pkg/selection"
)

func TestSelectors_For(t *testing.T) {
	s := DefaultSelectors()
	tests := []struct {
		mode selection.Mode
		want int
	}{
		{selection.ModeTestimonial, 5},
		{selection.ModeMember, 5},
		{selection.ModeNone, 0},
		{selection.Mode("bogus"), 0},
	}
	for _, tt := range tests {
		if got := len(s.For(tt.mode)); got != tt.want {
			t.Errorf("For(%v) = %d selectors, want %d", tt.mode, got, tt.want)
		}
	}
}

func TestSelectors_Validate(t *testing.T) {
	if err := DefaultSelectors().Validate(); err != nil {
		t.Errorf("default selectors invalid: %v", err)
	}
	bad := Selectors{Member: []string{"li.member", "div[class*="}}
	if err := bad.Validate(); !errors.Is(err, errors.ErrCodeInvalidSelector) {
		t.Errorf("Validate() = %v, want INVALID_SELECTOR", err)
	}
}

func TestSelectors_WithDefaults(t *testing.T) {
	s := Selectors{Member: []string{".card"}}.WithDefaults()
	if len(s.Testimonial) != 5 {
		t.Errorf("testimonial defaults not applied: %v", s.Testimonial)
	}
	if len(s.Member) != 1 || s.Member[0] != ".card" {
		t.Errorf("member override lost: %v", s.Member)
	}
}
