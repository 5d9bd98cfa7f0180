// internal/services/image_service.go
package services

import (
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/javajoker/storefront-backend/internal/models"
)

// Probed in this order; the empty suffix matches files named without an extension.
var imageFormats = []string{"", ".webp", ".jpg", ".jpeg", ".avif", ".png"}

const (
	imageURLPrefix      = "/img"
	defaultProductImage = "/product-default"
)

// ImageService resolves product images from the public directory.
// Returned paths are URL paths under /img.
type ImageService struct {
	fs afero.Fs
}

// NewImageService looks for images under <publicDir>/img.
func NewImageService(fs afero.Fs, publicDir string) *ImageService {
	return &ImageService{fs: afero.NewBasePathFs(fs, publicDir)}
}

// exists matches regular files only; /img/<category> is usually also a directory.
func (s *ImageService) exists(urlPath string) bool {
	info, err := s.fs.Stat(urlPath)
	return err == nil && !info.IsDir()
}

// find returns the first existing format of basePath.
func (s *ImageService) find(basePath string) (string, bool) {
	for _, format := range imageFormats {
		candidate := imageURLPrefix + basePath + format
		if s.exists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// findNumbered collects basePath.1, basePath.2, ... per format until the first gap.
func (s *ImageService) findNumbered(basePath string) []string {
	var images []string
	for _, format := range imageFormats {
		for index := 1; ; index++ {
			candidate := imageURLPrefix + basePath + "." + strconv.Itoa(index) + format
			if !s.exists(candidate) {
				break
			}
			images = append(images, candidate)
		}
	}
	return images
}

// ProductImages lists full-size images: explicit img entries, per-category
// main and numbered images, the current category image, the first category
// image and the default image. Duplicates are dropped, order is kept.
func (s *ImageService) ProductImages(p models.Product, currentCategory string) []string {
	var images []string

	for _, img := range p.Images {
		if found, ok := s.find("/" + strings.TrimPrefix(img, "/")); ok {
			images = append(images, found)
		}
	}

	if p.Slug != "" {
		for _, category := range p.Categories {
			base := "/" + category + "/" + p.Slug
			if found, ok := s.find(base); ok {
				images = append(images, found)
			}
			images = append(images, s.findNumbered(base)...)
		}
	}

	if currentCategory != "" {
		if found, ok := s.find("/" + currentCategory); ok {
			images = append(images, found)
		}
	}

	for _, category := range p.Categories {
		if found, ok := s.find("/" + category); ok {
			images = append(images, found)
			break
		}
	}

	if found, ok := s.find(defaultProductImage); ok {
		images = append(images, found)
	}

	return dedupe(images)
}

// Thumbnails returns per-category .thumb images, else the first full image.
func (s *ImageService) Thumbnails(p models.Product, currentCategory string) []string {
	thumbs := []string{}
	if p.Slug == "" {
		return thumbs
	}

	for _, category := range p.Categories {
		if found, ok := s.find("/" + category + "/" + p.Slug + ".thumb"); ok {
			thumbs = append(thumbs, found)
		}
	}

	if len(thumbs) == 0 {
		if images := s.ProductImages(p, currentCategory); len(images) > 0 {
			thumbs = append(thumbs, images[0])
		}
	}
	return thumbs
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
