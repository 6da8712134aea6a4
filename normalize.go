package lessonplan

import (
	"context"
	"strings"

	"github.com/alnah/go-lessonplan/internal/pipeline"
)

// normalizeCompletion turns raw model output into sanitized HTML.
// A fence wrapping the whole answer is removed; content with no HTML tag is
// treated as Markdown and converted before sanitizing. Output that sanitizes
// to nothing is ErrEmptyCompletion.
func normalizeCompletion(ctx context.Context, md pipeline.MarkdownConverter, content string) (string, error) {
	body := pipeline.StripCodeFence(content)
	if body == "" {
		return "", ErrEmptyCompletion
	}

	if !pipeline.ContainsMarkup(body) {
		converted, err := md.ToFragment(ctx, body)
		if err != nil {
			return "", err
		}
		body = converted
	}

	clean := strings.TrimSpace(Sanitize(body))
	if clean == "" {
		return "", ErrEmptyCompletion
	}
	return clean, nil
}
