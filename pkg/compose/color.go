package compose

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"github.com/matzehuels/stc/pkg/errors"
)

// DefaultBackground is used when no background colour is given.
const DefaultBackground = "#ffffff"

// ParseColor parses a CSS colour: #rgb, #rrggbb, a named colour or
// rgb(r, g, b).
func ParseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return color.RGBA{}, errors.New(errors.ErrCodeInvalidColor, "colour cannot be empty")
	case strings.HasPrefix(s, "#"):
		return parseHex(s)
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseRGB(s)
	}
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	return color.RGBA{}, errors.New(errors.ErrCodeInvalidColor, "unsupported colour %q", s)
}

func parseHex(s string) (color.RGBA, error) {
	if len(s) == 4 {
		s = string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	if len(s) != 7 || strings.Trim(s[1:], "0123456789abcdef") != "" {
		return color.RGBA{}, errors.New(errors.ErrCodeInvalidColor, "invalid hex colour %q", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid hex colour %q", s)
	}
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 0xff}, nil
}

func parseRGB(s string) (color.RGBA, error) {
	parts := strings.Split(s[len("rgb("):len(s)-1], ",")
	if len(parts) != 3 {
		return color.RGBA{}, errors.New(errors.ErrCodeInvalidColor, "rgb() needs three components: %q", s)
	}
	var v [3]uint8
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > 255 {
			return color.RGBA{}, errors.New(errors.ErrCodeInvalidColor, "rgb() component out of range: %q", s)
		}
		v[i] = uint8(n)
	}
	return color.RGBA{v[0], v[1], v[2], 0xff}, nil
}
