// Package generic holds the selector-driven extraction helpers shared by
// every HTML source: ordered selector/attribute chains, required-element
// lookups, URL resolution, indexed image collection and inline script
// probing.
package generic
