package tmdb

import (
	"testing"

	"github.com/Guilhem-Bonnet/zetflix/internal/domain"
)

func TestImages(t *testing.T) {
	img := NewImages("")

	tests := []struct {
		name  string
		class domain.ImageClass
		path  string
		size  string
		want  string
	}{
		{"poster default size", domain.ImagePoster, "/abc.jpg", "", "https://image.tmdb.org/t/p/w500/abc.jpg"},
		{"backdrop explicit", domain.ImageBackdrop, "/bd.jpg", "w780", "https://image.tmdb.org/t/p/w780/bd.jpg"},
		{"profile original", domain.ImageProfile, "/pr.jpg", "original", "https://image.tmdb.org/t/p/original/pr.jpg"},
		{"missing leading slash", domain.ImagePoster, "abc.jpg", "w154", "https://image.tmdb.org/t/p/w154/abc.jpg"},
		{"poster placeholder", domain.ImagePoster, "", "", "/placeholder-poster.jpg"},
		{"backdrop placeholder", domain.ImageBackdrop, "  ", "w300", "/placeholder-backdrop.jpg"},
		{"profile placeholder", domain.ImageProfile, "", "w45", "/placeholder-profile.jpg"},
	}
	for _, tt := range tests {
		got, err := img.URL(tt.class, tt.path, tt.size)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if got != tt.want {
			t.Fatalf("%s: want %q, got %q", tt.name, tt.want, got)
		}
	}
}

func TestImages_RejectsSizeOutsideAllowList(t *testing.T) {
	img := NewImages("http://img.local/")
	if _, err := img.Poster("/a.jpg", "w1280"); err != domain.ErrInvalidImageSize {
		t.Fatalf("poster w1280: expected ErrInvalidImageSize, got %v", err)
	}
	if _, err := img.Profile("/a.jpg", "w500"); err != domain.ErrInvalidImageSize {
		t.Fatalf("profile w500: expected ErrInvalidImageSize, got %v", err)
	}
	got, err := img.Backdrop("/a.jpg", "w1280")
	if err != nil || got != "http://img.local/w1280/a.jpg" {
		t.Fatalf("custom host: got %q, %v", got, err)
	}
}
