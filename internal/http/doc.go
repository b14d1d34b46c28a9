// Package http exposes the library browser as a JSON API.
//
// Routes mount under a configurable base path (default /api):
//   - Library: POST /scan, POST /read, POST /render
//   - Directories: GET|POST /directories, PATCH|DELETE /directories/{id}
//   - Progress: GET|POST /read-status, POST /bookmarks
//
// A metrics endpoint is added outside the base path when a gatherer is
// configured. Host applications can also register the routes on their own
// mux through API.Register.
package http
