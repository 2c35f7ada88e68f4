// Package server holds the HTTP server configuration.
//
// The start command owns the server lifecycle; this package only defines the
// settings it reads: listen port, API key and the timeout applied to a sync pass
// triggered over HTTP.
package server
