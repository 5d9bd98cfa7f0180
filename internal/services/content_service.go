// internal/services/content_service.go
package services

import (
	"bytes"
	"errors"
	"os"
	"path"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ContentService renders markdown pages that sit next to the catalog tables.
type ContentService struct {
	fs       afero.Fs
	markdown goldmark.Markdown
}

func NewContentService(fs afero.Fs, contentDir string) *ContentService {
	return &ContentService{
		fs: afero.NewBasePathFs(fs, contentDir),
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// PageMarkdown renders the first existing document for a slug path:
//
//	[]                 -> _index.md
//	a/b                -> a/b/_index.md
//	a/b (product b)    -> a/b.md
//	filter/a_b.full.md, filter/a_b.md, a/b.md
//
// It returns "" when nothing matches.
func (s *ContentService) PageMarkdown(slug []string) string {
	if !validSegments(slug) {
		return ""
	}

	if len(slug) == 0 {
		return s.render("_index.md")
	}

	joined := path.Join(slug...)
	candidates := []string{path.Join(joined, "_index.md")}
	if len(slug) >= 2 {
		candidates = append(candidates, path.Join(path.Join(slug[:len(slug)-1]...), slug[len(slug)-1]+".md"))
	}
	underscored := strings.Join(slug, "_")
	candidates = append(candidates,
		path.Join("filter", underscored+".full.md"),
		path.Join("filter", underscored+".md"),
		joined+".md",
	)

	for _, name := range candidates {
		if content := s.render(name); content != "" {
			return content
		}
	}
	return ""
}

func (s *ContentService) BrandMarkdown(brandSlug string) string {
	if !validSegments([]string{brandSlug}) {
		return ""
	}
	return s.render(path.Join("brand", brandSlug+".md"))
}

// render returns "" for missing or unreadable documents.
func (s *ContentService) render(name string) string {
	source, err := afero.ReadFile(s.fs, name)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logrus.WithError(err).WithField("path", name).Error("Error loading markdown")
		}
		return ""
	}

	var buf bytes.Buffer
	if err := s.markdown.Convert(source, &buf); err != nil {
		logrus.WithError(err).WithField("path", name).Error("Error rendering markdown")
		return ""
	}
	return buf.String()
}

func validSegments(slug []string) bool {
	for _, segment := range slug {
		if segment == "" || segment == "." || segment == ".." || strings.ContainsAny(segment, `/\`) {
			return false
		}
	}
	return true
}
