// Package contract holds the small capability interfaces shared by the
// pipeline and di packages: cancellation flags and value factories.
package contract
