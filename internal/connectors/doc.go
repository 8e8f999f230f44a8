// Package connectors holds the document loaders. Each subpackage knows how
// to read Q&A documents from one kind of source reference:
//
//   - filesystem: local paths, file:// URIs and "-" for standard input
//   - github: github://owner/repo/path[@ref]
//
// Loaders implement driven.DocumentLoader and are handed to the
// validation service in order; the first that supports a reference wins.
package connectors
