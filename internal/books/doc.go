// Package books provides the book data model and an HTTP client for the
// book store API.
//
// # API Endpoints
//
//   - GET /books: every book
//   - GET /books/{id}: one book
//   - POST /books: create a book from a Draft
//   - PUT /books/{id}: replace a book
//   - DELETE /books/{id}: remove a book
//
// All endpoints live under one configurable base URL. Endpoints are joined as
// "<base>/<endpoint>", so a base URL may carry a path prefix.
//
// # Wire format
//
// Book ids arrive as JSON numbers or strings depending on the server build
// and are kept as opaque strings. Dates decode from RFC 3339 timestamps or
// YYYY-MM-DD and encode as YYYY-MM-DD; null means no date. Stars may be null.
//
// # Errors
//
// Client.Do distinguishes:
//
//   - *TransportError: no response (dial failure, timeout, cancelled context)
//   - *ResponseError: any status outside 2xx
//   - "decode response" errors: a 2xx body that is not valid JSON for dest
//   - ErrNoContent: a 2xx response with an empty body when dest is non-nil
//
// Callers that only show a message can use err.Error() for all of them.
//
// # Drafts
//
// Draft mirrors Book without an id. Draft.Apply routes a single field change
// to its field, NormalizeGenres accepts either a comma-joined string or a
// slice, and WithPlaceholderImage fills a blank image before posting.
package books
