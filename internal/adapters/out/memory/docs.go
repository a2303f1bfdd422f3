// Package memory provides the volatile adapters: the active order registry,
// the order queue and an in-process dead-letter store. State is lost on restart.
package memory
