// Package ports declares the boundaries between the booking core and its
// adapters: forecast source, caches, notification channels, the journal,
// configuration, logging and metrics. Mocks live in internal/mocks.
//
//go:generate mockery
package ports
