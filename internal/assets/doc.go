// Package assets provides the page template and print stylesheets used to
// assemble printable notes.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in page.html, print.css, properties.css
//	    ├── FilesystemLoader  - user overrides from a directory on disk
//	    └── AssetResolver     - custom first, embedded as fallback
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css
//	└── templates/
//	    └── {name}.html
//
// Asset names are validated to prevent path traversal; FilesystemLoader also
// resolves symlinks and checks that paths stay within basePath.
package assets
