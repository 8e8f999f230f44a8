package domain

import (
	"sort"
	"strings"
)

// knownLanguages is the built-in code-block language allow-list.
// Keys are lower-case tags as written after the opening fence.
var knownLanguages = map[string]struct{}{
	// Web
	"js": {}, "javascript": {}, "jsx": {}, "mjs": {}, "cjs": {},
	"ts": {}, "typescript": {}, "tsx": {},
	"html": {}, "xml": {}, "svg": {}, "xhtml": {},
	"css": {}, "scss": {}, "sass": {}, "less": {}, "stylus": {},
	"json": {}, "json5": {}, "jsonc": {},
	"vue": {}, "svelte": {}, "graphql": {}, "gql": {},
	"handlebars": {}, "hbs": {}, "ejs": {}, "pug": {},
	"flow": {}, "coffeescript": {}, "coffee": {},

	// Shells and config
	"bash": {}, "sh": {}, "shell": {}, "zsh": {}, "fish": {}, "console": {},
	"shell-session": {}, "powershell": {}, "ps1": {}, "bat": {}, "cmd": {},
	"yaml": {}, "yml": {}, "toml": {}, "ini": {}, "properties": {}, "env": {},
	"dockerfile": {}, "docker": {}, "makefile": {}, "make": {}, "nginx": {},
	"apache": {}, "hcl": {}, "terraform": {}, "nix": {},

	// General purpose
	"go": {}, "golang": {}, "python": {}, "py": {}, "java": {}, "kotlin": {}, "kt": {},
	"c": {}, "cpp": {}, "c++": {}, "h": {}, "hpp": {}, "csharp": {}, "cs": {}, "c#": {},
	"fsharp": {}, "rust": {}, "rs": {}, "ruby": {}, "rb": {}, "php": {}, "perl": {},
	"swift": {}, "objectivec": {}, "objc": {}, "scala": {}, "groovy": {}, "dart": {},
	"elixir": {}, "erlang": {}, "haskell": {}, "hs": {}, "clojure": {}, "clj": {},
	"lua": {}, "r": {}, "julia": {}, "ocaml": {}, "elm": {}, "zig": {}, "nim": {},
	"lisp": {}, "scheme": {}, "racket": {}, "matlab": {}, "vb": {}, "vbnet": {},
	"solidity": {}, "wasm": {}, "asm": {}, "assembly": {},

	// Data and docs
	"sql": {}, "mysql": {}, "pgsql": {}, "postgresql": {}, "plsql": {},
	"markdown": {}, "md": {}, "mdx": {}, "rst": {}, "tex": {}, "latex": {},
	"csv": {}, "protobuf": {}, "proto": {}, "regex": {},

	// Plain
	"text": {}, "txt": {}, "plaintext": {}, "plain": {}, "diff": {}, "patch": {},
	"log": {}, "http": {}, "output": {},
}

// diagramLanguages maps diagram tags to their canonical grammar name.
var diagramLanguages = map[string]string{
	"mermaid":  "mermaid",
	"dot":      "graphviz",
	"graphviz": "graphviz",
	"plantuml": "plantuml",
	"puml":     "plantuml",
}

// NormaliseLanguage reduces a fence info string to its language tag.
// It takes the first word, lower-cases it and strips the common
// "{.lang}" and "language-lang" wrappers.
func NormaliseLanguage(info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return ""
	}
	tag := strings.ToLower(fields[0])
	tag = strings.TrimPrefix(tag, "{")
	tag = strings.TrimSuffix(tag, "}")
	tag = strings.TrimPrefix(tag, ".")
	tag = strings.TrimPrefix(tag, "language-")
	tag = strings.TrimRight(tag, ",;:")
	return tag
}

// IsKnownLanguage reports whether tag is in the built-in allow-list.
func IsKnownLanguage(tag string) bool {
	_, ok := knownLanguages[strings.ToLower(tag)]
	return ok
}

// KnownLanguages returns the built-in allow-list, sorted.
func KnownLanguages() []string {
	out := make([]string, 0, len(knownLanguages))
	for k := range knownLanguages {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// DiagramGrammar returns the canonical grammar name for a diagram tag.
func DiagramGrammar(tag string) (string, bool) {
	g, ok := diagramLanguages[strings.ToLower(tag)]
	return g, ok
}

// IsDiagramLanguage reports whether tag declares a diagram block.
func IsDiagramLanguage(tag string) bool {
	_, ok := DiagramGrammar(tag)
	return ok
}

// DiagramLanguages returns the recognised diagram tags, sorted.
func DiagramLanguages() []string {
	out := make([]string, 0, len(diagramLanguages))
	for k := range diagramLanguages {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
