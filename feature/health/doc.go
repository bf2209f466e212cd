// Package health reports whether the storage API can do its job.
//
// # Checks Provided
//
//   - Liveness: Answers without touching any dependency.
//   - Storage: Lists buckets with the configured credentials and checks that the default bucket exists.
//   - Database: Pings the optional activity database.
//
// # HTTP Endpoints
//
//   - GET /health/ : Liveness message.
//   - GET /health/storage : Storage check (supports ?fix=true to create the default bucket).
//   - GET /health/database : Database check.
package health
