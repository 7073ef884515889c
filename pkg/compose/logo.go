package compose

import (
	"bytes"
	"image"
	"os"

	// Registered logo formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/matzehuels/stc/pkg/errors"
)

// MaxLogoSize caps the bytes read for a logo.
const MaxLogoSize = 10 << 20

// LoadLogo decodes the logo from data, or from the file at path when data is
// empty. It returns a nil image and nil error when neither is given.
func LoadLogo(path string, data []byte) (image.Image, error) {
	if len(data) == 0 && path == "" {
		return nil, nil
	}
	if len(data) == 0 {
		if err := errors.ValidatePath(path); err != nil {
			return nil, err
		}
		b, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Wrap(errors.ErrCodeNotFound, err, "logo %s", path)
			}
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read logo %s", path)
		}
		data = b
	}
	if len(data) > MaxLogoSize {
		return nil, errors.New(errors.ErrCodeLogoDecode, "logo exceeds %d bytes", MaxLogoSize)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLogoDecode, err, "decode logo")
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, errors.New(errors.ErrCodeLogoDecode, "logo has no pixels")
	}
	return img, nil
}
