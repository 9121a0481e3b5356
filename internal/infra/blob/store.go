package blob

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/zeebo/xxh3"

	"github.com/foodgram-project/foodgram-server/internal/domain"
)

// Store writes uploaded recipe images to a directory. Files are
// content-addressed by xxh3 hash, so re-uploading the same image is a
// no-op and the returned path is stable.
type Store struct {
	root      string
	urlPrefix string
}

func NewStore(root, urlPrefix string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrap(err, "blob.NewStore")
	}
	return &Store{
		root:      root,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
	}, nil
}

// Root returns the directory images are stored under.
func (s *Store) Root() string {
	return s.root
}

var extensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// Save decodes a base64 data URI ("data:image/png;base64,...") and
// stores the payload, returning the public path to persist on the
// recipe.
func (s *Store) Save(dataURI string) (string, error) {
	rest, ok := strings.CutPrefix(dataURI, "data:")
	if !ok {
		return "", domain.ValidationError{Message: "image must be a base64 data URI"}
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", domain.ValidationError{Message: "image must be a base64 data URI"}
	}
	mimeType, encoding, _ := strings.Cut(meta, ";")
	if encoding != "base64" {
		return "", domain.ValidationError{Message: "image must be base64 encoded"}
	}
	ext, ok := extensions[mimeType]
	if !ok {
		return "", domain.ValidationError{Message: fmt.Sprintf("unsupported image type %q", mimeType)}
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", domain.ValidationError{Message: "invalid base64 image payload"}
	}
	if len(raw) == 0 {
		return "", domain.ValidationError{Message: "empty image payload"}
	}

	name := fmt.Sprintf("%016x.%s", xxh3.Hash(raw), ext)
	path := filepath.Join(s.root, name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, raw, 0o644); err != nil {
			return "", errors.Wrap(err, "blob.Store.Save")
		}
	}

	return s.urlPrefix + "/" + name, nil
}
