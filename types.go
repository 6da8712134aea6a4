package lessonplan

import (
	"fmt"
	"strings"
)

// Page format names accepted by RenderOptions (case-insensitive).
const (
	PageFormatLetter  = "letter"
	PageFormatLegal   = "legal"
	PageFormatTabloid = "tabloid"
	PageFormatLedger  = "ledger"
	PageFormatA3      = "a3"
	PageFormatA4      = "a4"
	PageFormatA5      = "a5"

	DefaultPageFormat = PageFormatA4
)

// paperSize holds page dimensions in inches.
type paperSize struct {
	Width  float64
	Height float64
}

var paperSizes = map[string]paperSize{
	PageFormatLetter:  {8.5, 11},
	PageFormatLegal:   {8.5, 14},
	PageFormatTabloid: {11, 17},
	PageFormatLedger:  {17, 11},
	PageFormatA3:      {11.7, 16.54},
	PageFormatA4:      {8.27, 11.7},
	PageFormatA5:      {5.83, 8.27},
}

// RenderOptions configures a single PDF render.
type RenderOptions struct {
	PageFormat string // "A4" when empty
}

// Validate checks the page format is known.
func (o RenderOptions) Validate() error {
	_, err := o.paper()
	return err
}

func (o RenderOptions) format() string {
	f := strings.ToLower(strings.TrimSpace(o.PageFormat))
	if f == "" {
		return DefaultPageFormat
	}
	return f
}

func (o RenderOptions) paper() (paperSize, error) {
	size, ok := paperSizes[o.format()]
	if !ok {
		return paperSize{}, fmt.Errorf("%w: %q", ErrInvalidPageFormat, o.PageFormat)
	}
	return size, nil
}

// IsValidPageFormat reports whether name is a supported page format.
func IsValidPageFormat(name string) bool {
	return RenderOptions{PageFormat: name}.Validate() == nil
}

// Usage holds token accounting for one completion.
// Estimated is set when counts were computed locally because the provider returned none.
type Usage struct {
	PromptTokens     int  `json:"promptTokens"`
	CompletionTokens int  `json:"completionTokens"`
	TotalTokens      int  `json:"totalTokens"`
	Estimated        bool `json:"estimated,omitempty"`
}

// GenerationResult is the outcome of Generate. HTML is always renderable:
// on failure it carries the fallback document.
type GenerationResult struct {
	Success     bool
	HTML        string
	Usage       *Usage
	ErrorDetail string
	Provider    string
	Model       string
}

// RenderResult is the outcome of Render.
type RenderResult struct {
	Success     bool
	PDF         []byte
	ErrorDetail string
}

func renderFailure(err error) RenderResult {
	return RenderResult{Success: false, ErrorDetail: err.Error()}
}
