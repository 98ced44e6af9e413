// Package assets provides the HTML page templates used by build and serve.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - templates compiled into the binary
//	    ├── FilesystemLoader  - templates from a directory on disk
//	    └── AssetResolver     - custom first, embedded as fallback
//
// A custom directory only needs the templates it overrides; anything
// missing falls back to the embedded copy.
//
// # Directory Structure
//
//	{basePath}/
//	└── templates/
//	    ├── page.html     # one document
//	    └── index.html    # the document listing
//
// # Security
//
// Template names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within basePath.
package assets
