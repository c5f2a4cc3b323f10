package discord

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// IconType is the image format of an uploaded icon.
type IconType string

const (
	IconTypeJPEG    IconType = "jpeg"
	IconTypePNG     IconType = "png"
	IconTypeWEBP    IconType = "webp"
	IconTypeGIF     IconType = "gif"
	IconTypeUnknown IconType = IconTypeJPEG
)

var iconTypes = []IconType{IconTypeJPEG, IconTypePNG, IconTypeWEBP, IconTypeGIF}

// IconTypeFromExtension returns the type for a file extension or name.
// Unrecognised extensions fall back to jpeg.
func IconTypeFromExtension(extension string) IconType {
	if ext := filepath.Ext(extension); ext != "" {
		extension = ext
	}

	extension = strings.ToLower(strings.TrimPrefix(extension, "."))
	if extension == "jpg" {
		extension = "jpeg"
	}

	return fromCode(iconTypes, IconType(extension), IconTypeUnknown)
}

// MIMEType returns the content type of the format.
func (t IconType) MIMEType() string {
	return "image/" + string(t)
}

// ErrEmptyIcon is returned when an icon has no data.
var ErrEmptyIcon = errors.New("icon data may not be empty")

// Icon is image data encoded for upload, such as a guild icon or webhook avatar.
type Icon struct {
	data     string
	iconType IconType
}

// NewIcon encodes data as an icon of the given type.
func NewIcon(data []byte, iconType IconType) (Icon, error) {
	if len(data) == 0 {
		return Icon{}, ErrEmptyIcon
	}

	if iconType == "" {
		iconType = IconTypeUnknown
	}

	if fromCode(iconTypes, iconType, "") == "" {
		return Icon{}, ErrUnsupportedImageType
	}

	return Icon{
		data:     base64.StdEncoding.EncodeToString(data),
		iconType: iconType,
	}, nil
}

// IconFromReader reads r fully and encodes it as an icon.
func IconFromReader(r io.Reader, iconType IconType) (Icon, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Icon{}, fmt.Errorf("failed to read icon: %w", err)
	}

	return NewIcon(data, iconType)
}

func (i Icon) Type() IconType {
	return i.iconType
}

// Encoding returns the data URI discord accepts for image fields.
func (i Icon) Encoding() string {
	if i.data == "" {
		return ""
	}

	return "data:" + i.iconType.MIMEType() + ";base64," + i.data
}

func (i Icon) Equal(other Icon) bool {
	return i == other
}

func (i Icon) MarshalJSON() ([]byte, error) {
	if i.data == "" {
		return null, nil
	}

	return []byte(`"` + i.Encoding() + `"`), nil
}

func (i Icon) String() string {
	return i.Encoding()
}
