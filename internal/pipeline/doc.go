// Package pipeline holds the HTML transformations shared by generation and
// rendering:
//   - CSS injection into assembled documents
//   - code-fence stripping and markup detection for model output
//   - Markdown to HTML conversion via goldmark, for models that answer in Markdown
//
// Browser work stays in the root package; this package never touches Chrome.
package pipeline
