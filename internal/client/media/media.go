// Package media turns a local image file into the value stored in an
// event's img field: an object storage URL when S3 is configured, a data
// URL otherwise.
package media

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Zhanerrke588595/it-events/internal/common"
	"github.com/Zhanerrke588595/it-events/internal/filex"
)

// MaxImageSize is the largest accepted image, in bytes.
const MaxImageSize = 2 << 20

var extByType = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
}

// Preparer resolves an image path to an img value. An empty path yields "".
type Preparer interface {
	Prepare(ctx context.Context, path string) (string, error)
}

// image is a validated local image.
type image struct {
	data        []byte
	contentType string
	ext         string
}

func readImage(path string) (*image, error) {
	data, err := filex.ReadLimited(path, MaxImageSize)
	if errors.Is(err, filex.ErrTooLarge) {
		return nil, common.NewValidationError("Image must be 2 MB or smaller", "img")
	}
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	ct := http.DetectContentType(data)
	if !strings.HasPrefix(ct, "image/") {
		return nil, common.NewValidationError("File is not an image", "img")
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		ext = extByType[ct]
	}
	return &image{data: data, contentType: ct, ext: ext}, nil
}

// DataURLPreparer inlines images as base64 data URLs.
type DataURLPreparer struct{}

func (DataURLPreparer) Prepare(_ context.Context, path string) (string, error) {
	if path == "" {
		return "", nil
	}
	img, err := readImage(path)
	if err != nil {
		return "", err
	}
	return DataURL(img.contentType, img.data), nil
}

// DataURL encodes data as "data:<contentType>;base64,...".
func DataURL(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
