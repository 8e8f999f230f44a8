package github

import (
	"fmt"
	"path"
	"strings"
)

// Scheme is the reference prefix handled by this package.
const Scheme = "github://"

// Ref identifies a file or directory in a repository.
type Ref struct {
	Owner string
	Repo  string
	Path  string

	// Ref is a branch, tag or SHA; empty means the default branch.
	Ref string
}

// ParseRef parses github://owner/repo[/path][@ref].
func ParseRef(s string) (Ref, error) {
	if !strings.HasPrefix(s, Scheme) {
		return Ref{}, fmt.Errorf("%w: %q does not start with %s", ErrInvalidRef, s, Scheme)
	}
	rest := strings.TrimPrefix(s, Scheme)

	var r Ref
	if i := strings.LastIndex(rest, "@"); i >= 0 {
		r.Ref = rest[i+1:]
		rest = rest[:i]
		if r.Ref == "" {
			return Ref{}, fmt.Errorf("%w: %q has an empty ref after @", ErrInvalidRef, s)
		}
	}

	parts := strings.SplitN(strings.TrimRight(rest, "/"), "/", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Ref{}, fmt.Errorf("%w: %q needs owner and repository", ErrInvalidRef, s)
	}
	r.Owner, r.Repo = parts[0], parts[1]
	if len(parts) == 3 {
		r.Path = path.Clean(parts[2])
		if r.Path == "." {
			r.Path = ""
		}
		if strings.HasPrefix(r.Path, "..") {
			return Ref{}, fmt.Errorf("%w: %q escapes the repository", ErrInvalidRef, s)
		}
	}
	return r, nil
}

// String formats the reference back to its github:// form.
func (r Ref) String() string {
	var b strings.Builder
	b.WriteString(Scheme)
	b.WriteString(r.Owner)
	b.WriteString("/")
	b.WriteString(r.Repo)
	if r.Path != "" {
		b.WriteString("/")
		b.WriteString(r.Path)
	}
	if r.Ref != "" {
		b.WriteString("@")
		b.WriteString(r.Ref)
	}
	return b.String()
}

// WebURL returns the github.com page for the reference.
func (r Ref) WebURL() string {
	branch := r.Ref
	if branch == "" {
		branch = "HEAD"
	}
	u := fmt.Sprintf("https://github.com/%s/%s/blob/%s", r.Owner, r.Repo, branch)
	if r.Path != "" {
		u += "/" + r.Path
	}
	return u
}

// withPath returns a copy of r pointing at p.
func (r Ref) withPath(p string) Ref {
	r.Path = p
	return r
}
