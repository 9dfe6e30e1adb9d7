package providers

import "time"

const (
	// shutdownTimeout is the maximum time to wait for graceful shutdown of services.
	shutdownTimeout = 30 * time.Second

	// startupTimeout bounds connection checks made while providers are built.
	startupTimeout = 10 * time.Second
)
