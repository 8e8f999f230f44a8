package treesitter

import "strings"

// grammarAliases maps normalised code tags to grammar names.
var grammarAliases = map[string]string{
	"js":         "javascript",
	"javascript": "javascript",
	"jsx":        "javascript",
	"mjs":        "javascript",
	"cjs":        "javascript",
	"ts":         "typescript",
	"typescript": "typescript",
	"tsx":        "tsx",
	"css":        "css",
	"html":       "html",
	"htm":        "html",
	"bash":       "bash",
	"sh":         "bash",
	"shell":      "bash",
	"zsh":        "bash",
	"go":         "go",
	"golang":     "go",
	"py":         "python",
	"python":     "python",
}

// grammarFor returns the grammar name for a code tag.
func grammarFor(tag string) (string, bool) {
	name, ok := grammarAliases[strings.ToLower(tag)]
	return name, ok
}

// maxErrors caps the errors reported per sample.
const maxErrors = 5
