// Package internal implements the application, request pipeline and
// Context of fnhttp. Import "github.com/dmitrymomot/fnhttp" instead, which
// re-exports the public API.
//
// # Request pipeline
//
// Every mounted function is served the same way:
//
//  1. The Cookie header is parsed and the session, if enabled, decoded.
//  2. Parameters are read from the query string (GET, HEAD) or the body.
//  3. The validator runs over params, cookies and session.
//  4. Middleware and the function run with the request Context.
//  5. A changed session is written back as a cookie.
//  6. The result is shaped into a response.
//
// A validation failure stops at step 3 with a 500 response. Errors carry
// their status through HTTPError; anything else is a 500.
//
// # Response shaping
//
//   - error: {"error":{"message":"..."}}
//   - SetBody: the body as is, 200 unless a status was set
//   - nil result: 201 without a body
//   - other values: {"data": value} with 200
package internal
