package lessonplan

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/alnah/go-lessonplan/internal/assets"
)

// notAvailable stands in for empty fields in the fallback table.
const notAvailable = "N/A"

type fallbackData struct {
	School      string
	Teacher     string
	Subject     string
	LessonTitle string
	Duration    string
}

// fallbackTemplate renders the degraded-mode lesson table.
type fallbackTemplate struct {
	tmpl *template.Template
}

// newFallbackTemplate parses the fallback template served by loader.
func newFallbackTemplate(loader assets.AssetLoader) (*fallbackTemplate, error) {
	src, err := loader.LoadTemplate(assets.FallbackTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFallbackTemplating, err)
	}
	tmpl, err := template.New(assets.FallbackTemplate).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFallbackTemplating, err)
	}
	return &fallbackTemplate{tmpl: tmpl}, nil
}

// Render returns the fallback table for req. Values are HTML-escaped.
func (f *fallbackTemplate) Render(req LessonRequest) (string, error) {
	data := fallbackData{
		School:      orNA(req.Get(FieldSchoolName)),
		Teacher:     orNA(req.Get(FieldTeacherName)),
		Subject:     orNA(req.Get(FieldSubject)),
		LessonTitle: orNA(req.Get(FieldLessonTitle)),
		Duration:    orNA(req.Get(FieldDuration)),
	}

	var b strings.Builder
	if err := f.tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrFallbackTemplating, err)
	}
	return b.String(), nil
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return notAvailable
	}
	return s
}

var defaultFallback = func() *fallbackTemplate {
	f, err := newFallbackTemplate(assets.NewEmbeddedLoader())
	if err != nil {
		panic(err)
	}
	return f
}()

// FallbackHTML returns the built-in fallback table for req.
func FallbackHTML(req LessonRequest) string {
	out, err := defaultFallback.Render(req)
	if err != nil {
		// Only a failing writer can make Execute fail; strings.Builder never does.
		return ""
	}
	return out
}
