// Package middleware groups the HTTP middleware used by the server.
//
// Subpackages provide individual middlewares; rayid attaches a correlation
// id to every request before any other handler runs.
package middleware
