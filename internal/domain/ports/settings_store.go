package ports

import "context"

// SettingsStore is the host's key-value option storage.
type SettingsStore interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set creates or replaces the value for key.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Disabler is the self-disable hook. After Disable the tool must not run again.
type Disabler interface {
	// Disable is idempotent.
	Disable(ctx context.Context) error
	IsDisabled(ctx context.Context) (bool, error)

	// Enable clears the flag again (used by the clean hook).
	Enable(ctx context.Context) error
}
