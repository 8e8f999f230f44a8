package domain

// Document is a parsed Q&A document.
// Sections are kept in source order; entries are numbered globally
// across all sections.
type Document struct {
	// Source is where the text came from (file path, URL, "-" for stdin).
	Source string

	// Title is the level-1 heading above the sections, if any.
	Title string

	// Sections holds the thematic groupings in source order.
	Sections []Section
}

// Entries returns every entry of the document in global order.
func (d *Document) Entries() []Entry {
	var n int
	for i := range d.Sections {
		n += len(d.Sections[i].Entries)
	}
	entries := make([]Entry, 0, n)
	for i := range d.Sections {
		entries = append(entries, d.Sections[i].Entries...)
	}
	return entries
}

// EntryCount returns the number of entries across all sections.
func (d *Document) EntryCount() int {
	var n int
	for i := range d.Sections {
		n += len(d.Sections[i].Entries)
	}
	return n
}

// Section is a topical grouping of consecutive entries.
type Section struct {
	// Title is the heading text.
	Title string

	// Line is the 1-based line of the heading (0 for an implicit section).
	Line int

	// Implicit is true for the untitled section that holds entries
	// appearing before the first heading.
	Implicit bool

	// Entries are the numbered questions in this section.
	Entries []Entry
}

// Entry is one numbered question and its answer.
type Entry struct {
	// Ordinal is the number written in the source.
	Ordinal int

	// Line is the 1-based line of the question.
	Line int

	// Question is the question text with list and emphasis markers removed.
	Question string

	// Answer is the raw answer body (Markdown/HTML) without the
	// collapsible wrapper and navigation lines.
	Answer string

	// AnswerText is Answer reduced to its visible text content.
	AnswerText string

	// Collapsible is true when the answer is wrapped in <details>.
	Collapsible bool

	// Summary is the <summary> label of the collapsible block.
	Summary string

	// CodeBlocks are the fenced code samples in the answer.
	CodeBlocks []CodeBlock

	// DiagramBlocks are the fenced diagrams in the answer.
	DiagramBlocks []DiagramBlock
}

// CodeBlock is an illustrative snippet inside an answer.
type CodeBlock struct {
	// Language is the normalised info-string tag ("" when untagged).
	Language string

	// Source is the text between the fences.
	Source string

	// Line is the 1-based line of the opening fence.
	Line int
}

// DiagramBlock is an illustrative diagram inside an answer.
type DiagramBlock struct {
	// Language is the diagram language tag (e.g. "mermaid").
	Language string

	// Source is the diagram text between the fences.
	Source string

	// Line is the 1-based line of the opening fence.
	Line int
}
