// Package ports defines the contracts between the application core and its
// adapters: the four collaborating services, the order registry and queue, the
// dead-letter store and the lifecycle event publisher.
package ports
