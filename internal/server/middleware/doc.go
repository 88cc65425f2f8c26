// Package middleware provides HTTP middleware for the kube-explorer API server.
// These middleware functions handle security headers, CORS, request size limits
// and HTTP metrics.
package middleware
