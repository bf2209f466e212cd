// Package server holds the HTTP server configuration.
//
// While the start command handles the server startup, this package defines the
// settings it reads: listen port, optional API key, CORS origins for the
// browser front end and the upload body limit.
package server
