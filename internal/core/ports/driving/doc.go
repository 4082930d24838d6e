// Package driving defines the interfaces through which the outside
// world drives the core (primary ports in hexagonal architecture).
//
// The cobra CLI is the only driving adapter today. Each command depends
// on one of these interfaces rather than on a concrete service, so the
// command layer can be tested against fakes.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: services, adapters, or any external dependency
package driving
