// Package filesystem loads Q&A documents from local files and standard
// input, and watches local files for changes with fsnotify.
package filesystem
