// Package middleware groups the HTTP middleware used by the Fiber app:
// request-id propagation (rayid) and API-key authentication (auth).
package middleware
