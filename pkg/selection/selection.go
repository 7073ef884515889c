// Package selection defines the captured-item data model and its typed
// persistence under the single storage key "selectedItems".
//
// A [Set] is an ordered list of [Item]s. Insertion order is significant: it
// is the order in which the composer lays items out. The ambient store is the
// source of truth; every in-memory Set held by the capture agent or the
// composer is only a cache of it.
package selection

import (
	"strings"
)

// ItemType tags an item with the kind of element it was captured from.
type ItemType string

// Item types.
const (
	TypeTestimonial ItemType = "testimonial"
	TypeMember      ItemType = "member"
)

// Heading returns the label the composer draws above the item.
// Anything other than a member is rendered as a testimonial.
func (t ItemType) Heading() string {
	if t == TypeMember {
		return "Member Highlight"
	}
	return "Testimonial"
}

// Item is one captured snippet of page text.
type Item struct {
	Type ItemType `json:"type"`
	Text string   `json:"text"`
}

// NewItem builds an item from raw captured text. It trims the text and
// reports false when nothing remains; empty captures are never stored.
func NewItem(t ItemType, raw string) (Item, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Item{}, false
	}
	return Item{Type: t, Text: text}, true
}

// Set is an ordered collection of items.
type Set []Item

// Append returns s with item appended. The receiver is never modified in
// place, so callers holding an older Set keep their copy.
func (s Set) Append(item Item) Set {
	out := make(Set, len(s), len(s)+1)
	copy(out, s)
	return append(out, item)
}

// First returns at most the first n items.
func (s Set) First(n int) Set {
	if n < 0 {
		n = 0
	}
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// Clean drops items with empty text, repairing stores written by other tools.
func (s Set) Clean() Set {
	out := make(Set, 0, len(s))
	for _, it := range s {
		if strings.TrimSpace(it.Text) != "" {
			out = append(out, it)
		}
	}
	return out
}

// Mode is the kind of element currently eligible for capture.
type Mode string

// Modes. ModeNone disables highlighting and capture.
const (
	ModeNone        Mode = ""
	ModeTestimonial Mode = Mode(TypeTestimonial)
	ModeMember      Mode = Mode(TypeMember)
)

// ParseMode maps s to a known mode. Unknown strings yield ModeNone; they are
// not an error.
func ParseMode(s string) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeTestimonial:
		return ModeTestimonial
	case ModeMember:
		return ModeMember
	default:
		return ModeNone
	}
}

// Valid reports whether m names a capture mode.
func (m Mode) Valid() bool {
	return m == ModeTestimonial || m == ModeMember
}

// ItemType returns the item type recorded for captures made in mode m.
func (m Mode) ItemType() ItemType {
	return ItemType(m)
}

// String returns "none" for ModeNone.
func (m Mode) String() string {
	if m == ModeNone {
		return "none"
	}
	return string(m)
}
