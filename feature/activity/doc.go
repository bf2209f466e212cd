// Package activity records successful storage mutations.
//
// When a database is configured, the files feature reports every upload,
// folder creation, delete, copy, move and bucket change to the Store, which
// persists it with GORM. Without a database the Nop recorder is used and the
// /activity route is not registered.
//
// # HTTP Endpoints
//
//   - GET /activity : recent entries, newest first (?bucket=, ?limit=).
package activity
