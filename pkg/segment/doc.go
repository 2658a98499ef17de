// Package segment parses the bracket grammar used for localized route paths
// and renders it into router path patterns.
//
// A path segment is the text between two slashes. Within a segment:
//
//   - literal text is a static token
//   - [name] is a required parameter
//   - [[name]] is an optional parameter
//   - [...name] is a catch-all parameter
//
// Tokens render to patterns understood by the route table:
//
//	tokens, err := segment.Parse("[id]")
//	pattern := segment.Render(tokens) // "/:id()"
//
// Whole paths are converted with [ParsePath]:
//
//	pattern, err := segment.ParsePath("/blog/[...slug]") // "/blog/:slug(.*)*"
//
// Malformed brackets return a [*ParseError] wrapping [ErrEmptyParam] or
// [ErrUnfinishedParam]. Use a [Cache] to avoid re-parsing the same custom
// paths during one generation run.
package segment
