// Package middleware groups the HTTP middleware of the sync service.
//
// # Components
//
//   - auth: API key validation protecting the sync and mapping endpoints.
//   - rayid: generates (or propagates) a request id, stored in the Fiber context
//     and echoed in the X-Ray-ID response header for tracing.
//
// RayID must be registered first so that every later log line carries the id.
package middleware
