package services

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/storefront-backend/internal/models"
)

func newTestImageService(t *testing.T, files ...string) *ImageService {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, name := range files {
		require.NoError(t, afero.WriteFile(fs, "/public"+name, []byte("img"), 0o644))
	}
	return NewImageService(fs, "/public")
}

func TestImageService_ProductImagesOrder(t *testing.T) {
	svc := newTestImageService(t,
		"/img/promo/special.png",
		"/img/boilers/baxi-eco.webp",
		"/img/boilers/baxi-eco.1.webp",
		"/img/boilers/baxi-eco.2.webp",
		"/img/boilers/baxi-eco.4.webp",
		"/img/boilers/baxi-eco.1.jpg",
		"/img/gas.jpg",
		"/img/boilers.jpg",
		"/img/product-default.png",
	)

	p := models.Product{
		Slug:       "baxi-eco",
		Categories: []string{"boilers"},
		Images:     []string{"promo/special"},
	}

	images := svc.ProductImages(p, "gas")
	assert.Equal(t, []string{
		"/img/promo/special.png",
		"/img/boilers/baxi-eco.webp",
		"/img/boilers/baxi-eco.1.webp",
		"/img/boilers/baxi-eco.2.webp",
		"/img/boilers/baxi-eco.1.jpg",
		"/img/gas.jpg",
		"/img/boilers.jpg",
		"/img/product-default.png",
	}, images)
}

func TestImageService_ProductImagesDeduplicates(t *testing.T) {
	svc := newTestImageService(t, "/img/boilers.webp")

	p := models.Product{Slug: "baxi-eco", Categories: []string{"boilers"}}
	assert.Equal(t, []string{"/img/boilers.webp"}, svc.ProductImages(p, "boilers"))
}

func TestImageService_IgnoresDirectories(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/public/img/boilers", 0o755))
	svc := NewImageService(fs, "/public")

	p := models.Product{Slug: "baxi-eco", Categories: []string{"boilers"}}
	assert.Empty(t, svc.ProductImages(p, "boilers"))
}

func TestImageService_Thumbnails(t *testing.T) {
	svc := newTestImageService(t,
		"/img/boilers/baxi-eco.thumb.webp",
		"/img/gas/baxi-eco.thumb.jpg",
		"/img/boilers/baxi-eco.webp",
	)

	p := models.Product{Slug: "baxi-eco", Categories: []string{"boilers", "gas", "pumps"}}
	assert.Equal(t, []string{"/img/boilers/baxi-eco.thumb.webp", "/img/gas/baxi-eco.thumb.jpg"}, svc.Thumbnails(p, ""))
}

func TestImageService_ThumbnailsFallBackToFirstImage(t *testing.T) {
	svc := newTestImageService(t, "/img/boilers/baxi-eco.jpg", "/img/product-default.png")

	p := models.Product{Slug: "baxi-eco", Categories: []string{"boilers"}}
	assert.Equal(t, []string{"/img/boilers/baxi-eco.jpg"}, svc.Thumbnails(p, ""))

	empty := newTestImageService(t)
	assert.Empty(t, empty.Thumbnails(p, ""))
	assert.NotNil(t, empty.Thumbnails(models.Product{}, ""))
}
