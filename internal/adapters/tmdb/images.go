package tmdb

import (
	"strings"

	"github.com/Guilhem-Bonnet/zetflix/internal/domain"
)

// Images construit les URLs {host}/{size}{path}. Un path vide donne le
// placeholder local de la classe.
type Images struct {
	base string
}

func NewImages(base string) Images {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		base = DefaultImageBaseURL
	}
	return Images{base: base}
}

func (i Images) URL(class domain.ImageClass, path, size string) (string, error) {
	size, err := domain.ResolveImageSize(class, size)
	if err != nil {
		return "", err
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return domain.ImagePlaceholder(class), nil
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return i.base + "/" + size + path, nil
}

func (i Images) Poster(path, size string) (string, error) {
	return i.URL(domain.ImagePoster, path, size)
}

func (i Images) Backdrop(path, size string) (string, error) {
	return i.URL(domain.ImageBackdrop, path, size)
}

func (i Images) Profile(path, size string) (string, error) {
	return i.URL(domain.ImageProfile, path, size)
}
