// Package assets provides the print stylesheet and HTML templates used to
// assemble lesson-plan documents.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - go:embed copies compiled into the binary
//	    ├── FilesystemLoader  - overrides from a directory on disk
//	    └── AssetResolver     - override first, embedded on "not found"
//
// # Directory Structure
//
//	assets/
//	├── styles/
//	│   └── print.css
//	└── templates/
//	    ├── document.html   (full-page wrapper: .Title, .Body)
//	    └── fallback.html   (degraded-mode lesson table)
//
// An override directory only needs the files it replaces.
package assets
