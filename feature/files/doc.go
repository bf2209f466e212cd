// Package files serves buckets, folders and files over HTTP.
//
// Folders do not exist in object storage. A folder is a key prefix ending in
// "/", and an empty folder is kept alive by a zero-byte ".keep" object that
// listings never show.
//
// # HTTP Endpoints
//
//   - GET /list_buckets : Lists buckets.
//   - POST /create_bucket : Creates a bucket (form field bucket_name).
//   - DELETE /delete_bucket/:bucket : Empties and removes a bucket.
//   - GET / : Lists a folder (?bucket=&folder=).
//   - POST /upload/:bucket : Multipart upload (file, folder).
//   - POST /create_folder/:bucket : Creates a folder (folder_name, parent_folder).
//   - DELETE /delete_file/:bucket : Removes one object (?path=).
//   - DELETE /delete_folder/:bucket : Removes everything under a prefix (?path=).
//   - POST /copy_file/:bucket : Server-side copy ({"path","new_path"}).
//   - POST /move_file/:bucket : Copy then delete the source.
//   - GET /download/:bucket : Presigned download link (?path=).
//
// Object operations fail with {"error": "..."}. Bucket and listing operations
// fail with {"detail": {"message", "error", "status_code"}}.
package files
