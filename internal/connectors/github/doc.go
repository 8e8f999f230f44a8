// Package github loads Q&A documents straight from GitHub repositories.
//
// References have the form
//
//	github://owner/repo/path/to/questions.md[@ref]
//
// where ref is an optional branch, tag or commit SHA (default branch
// otherwise). A reference without a path, or whose path names a
// directory, can be expanded into every Markdown file below it with
// [Loader.Expand].
//
// # Authentication
//
// A personal access token is optional. Without one the API allows 60
// requests per hour, which is enough for occasional checks of public
// repositories; with one the limit is 5,000 per hour and private
// repositories become readable.
//
// # Rate Limiting
//
// Requests go through a dual-strategy limiter:
//
//  1. Proactive throttling: a token bucket spaces requests out.
//
//  2. Reactive handling: X-RateLimit-Remaining and X-RateLimit-Reset are
//     tracked from every response. When the remaining quota drops below a
//     small reserve the limiter waits for the reset.
//
// # Errors
//
// API failures are returned as [*APIError] or [*RateLimitError] wrapped in
// domain.ErrSourceUnreadable, so callers can both print the reason and
// treat the source as unreadable.
package github
