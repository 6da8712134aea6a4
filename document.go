package lessonplan

import (
	"context"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/alnah/go-lessonplan/internal/assets"
	"github.com/alnah/go-lessonplan/internal/pipeline"
)

// documentTitle is the <title> of every rendered document.
const documentTitle = "Lesson Plan"

// documentBuilder wraps HTML fragments into a printable page.
type documentBuilder struct {
	tmpl     *template.Template
	css      string
	injector pipeline.CSSInjector
}

func newDocumentBuilder(loader assets.AssetLoader) (*documentBuilder, error) {
	src, err := loader.LoadTemplate(assets.DocumentTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentAssembly, err)
	}
	tmpl, err := template.New(assets.DocumentTemplate).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentAssembly, err)
	}
	css, err := loader.LoadStyle(assets.PrintStyle)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentAssembly, err)
	}
	return &documentBuilder{
		tmpl:     tmpl,
		css:      css,
		injector: &pipeline.CSSInjection{},
	}, nil
}

// Build returns a full HTML document for fragment with the print stylesheet
// and an @page rule sized to size. The fragment is inserted as-is.
func (b *documentBuilder) Build(ctx context.Context, fragment string, size paperSize) (string, error) {
	var out strings.Builder
	err := b.tmpl.Execute(&out, struct {
		Title string
		Body  template.HTML
	}{
		Title: documentTitle,
		Body:  template.HTML(fragment), // #nosec G203 -- caller-supplied document body
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentAssembly, err)
	}

	css := pageSizeRule(size) + "\n" + b.css
	return b.injector.InjectCSS(ctx, out.String(), css), nil
}

// pageSizeRule returns an @page size declaration in inches.
func pageSizeRule(size paperSize) string {
	return "@page { size: " + inches(size.Width) + " " + inches(size.Height) + "; }"
}

func inches(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "in"
}
