package persistence

import (
	"context"
	"log"

	"github.com/rankmath/repair-action-scheduler/internal/domain/ports"
)

// disabledValue is what the flag holds once the tool has switched itself off.
const disabledValue = "1"

// SettingsDisabler keeps the self-disable flag in the settings store.
type SettingsDisabler struct {
	store ports.SettingsStore
	key   string
}

// NewSettingsDisabler creates a disabler that writes key in store.
func NewSettingsDisabler(store ports.SettingsStore, key string) *SettingsDisabler {
	return &SettingsDisabler{store: store, key: key}
}

// Disable sets the flag. Calling it again is a no-op.
func (d *SettingsDisabler) Disable(ctx context.Context) error {
	disabled, err := d.IsDisabled(ctx)
	if err != nil {
		return err
	}
	if disabled {
		return nil
	}
	log.Printf("🔒 Disabling repair tool (%s)", d.key)
	return d.store.Set(ctx, d.key, disabledValue)
}

// IsDisabled reports whether Disable has been called.
func (d *SettingsDisabler) IsDisabled(ctx context.Context) (bool, error) {
	v, ok, err := d.store.Get(ctx, d.key)
	if err != nil {
		return false, err
	}
	return ok && v == disabledValue, nil
}

// Enable removes the flag.
func (d *SettingsDisabler) Enable(ctx context.Context) error {
	return d.store.Delete(ctx, d.key)
}
