package domain

import (
	"errors"
	"strings"
)

type ImageClass string

const (
	ImagePoster   ImageClass = "poster"
	ImageBackdrop ImageClass = "backdrop"
	ImageProfile  ImageClass = "profile"
)

var ErrInvalidImageSize = errors.New("invalid image size")

var ErrInvalidImageClass = errors.New("invalid image class (expected poster, backdrop or profile)")

type imageClassInfo struct {
	sizes       []string
	defaultSize string
	placeholder string
}

var imageClasses = map[ImageClass]imageClassInfo{
	ImagePoster: {
		sizes:       []string{"w154", "w185", "w342", "w500", "w780", "original"},
		defaultSize: "w500",
		placeholder: "/placeholder-poster.jpg",
	},
	ImageBackdrop: {
		sizes:       []string{"w300", "w780", "w1280", "original"},
		defaultSize: "w1280",
		placeholder: "/placeholder-backdrop.jpg",
	},
	ImageProfile: {
		sizes:       []string{"w45", "w185", "h632", "original"},
		defaultSize: "w185",
		placeholder: "/placeholder-profile.jpg",
	},
}

func ParseImageClass(s string) (ImageClass, error) {
	c := ImageClass(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := imageClasses[c]; !ok {
		return "", ErrInvalidImageClass
	}
	return c, nil
}

// ImageSizes renvoie la liste autorisée pour une classe (copie).
func ImageSizes(c ImageClass) []string {
	return append([]string(nil), imageClasses[c].sizes...)
}

func DefaultImageSize(c ImageClass) string {
	return imageClasses[c].defaultSize
}

func ImagePlaceholder(c ImageClass) string {
	return imageClasses[c].placeholder
}

// ResolveImageSize applique la taille par défaut si size est vide et
// rejette toute taille hors allow-list.
func ResolveImageSize(c ImageClass, size string) (string, error) {
	info, ok := imageClasses[c]
	if !ok {
		return "", ErrInvalidImageClass
	}
	size = strings.TrimSpace(size)
	if size == "" {
		return info.defaultSize, nil
	}
	for _, s := range info.sizes {
		if s == size {
			return size, nil
		}
	}
	return "", ErrInvalidImageSize
}
