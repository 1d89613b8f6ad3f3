// Package app assembles the dashboard server: configuration, logging,
// metrics, the websocket hub, the analysis services, and the chi router.
package app
