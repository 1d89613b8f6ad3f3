// Package http contains the chi handlers for the dashboard API. Handlers
// render JSON through go-chi/render and report failures as RFC 7807 problem
// details; analysis results carry a source tag so clients can distinguish
// computed tables from fallbacks.
package http
