package markdown

import "strings"

// fence is an open fenced code or diagram block.
type fence struct {
	char   byte
	length int
	indent int
	info   string
	line   int
	body   []string

	// owner is the entry the block belongs to, nil outside entries.
	owner *entryBuilder
}

// openFence returns a fence if line opens one.
// Outside entries the opener may be indented at most three spaces;
// answers are often indented, so inside an entry any indent is accepted.
func openFence(line string, n int, strictIndent bool) *fence {
	m := fencePattern.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	indent := len(m[1])
	if strictIndent && indent > 3 {
		return nil
	}
	marker, info := m[2], strings.TrimSpace(m[3])
	if marker[0] == '`' && strings.Contains(info, "`") {
		// Inline code such as ```x```.
		return nil
	}
	return &fence{
		char:   marker[0],
		length: len(marker),
		indent: indent,
		info:   info,
		line:   n,
	}
}

// closedBy reports whether line closes the fence.
func (f *fence) closedBy(line string) bool {
	t := strings.TrimSpace(line)
	run := 0
	for run < len(t) && t[run] == f.char {
		run++
	}
	return run >= f.length && run == len(t)
}

// trimIndent removes up to n leading spaces or tabs.
func trimIndent(line string, n int) string {
	i := 0
	for i < n && i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return line[i:]
}
