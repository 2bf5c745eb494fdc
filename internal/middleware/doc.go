// Package middleware provides HTTP middleware for request logging,
// Prometheus metrics, and bearer-token authentication.
package middleware
