// Package ports defines the interfaces (ports) that external adapters must implement.
// The repair service depends only on these, so tests can substitute in-memory fakes
// for the settings store, the notification surface and the database.
package ports
