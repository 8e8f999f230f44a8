// Package markdown provides the Parser for Q&A Markdown documents.
//
// The grammar is line based. Level-2 headings are sections when the
// document has any (a level-1 heading is then the title), otherwise
// level-1 headings are. Lines such as "12. What is JSX?" start entries.
// Answers may be wrapped in <details>/<summary> blocks and carry fenced
// code and diagram blocks.
package markdown
