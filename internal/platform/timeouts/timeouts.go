// Package timeouts defines shared timeout constants used across services.
package timeouts

import "time"

const (
	// ReadHeader limits how long an HTTP server waits for request headers.
	ReadHeader = 5 * time.Second
	// Shutdown bounds graceful HTTP shutdown and the telemetry flush on exit.
	Shutdown = 5 * time.Second
	// CatalogLoad caps the initial catalog read at startup.
	CatalogLoad = 10 * time.Second
)
