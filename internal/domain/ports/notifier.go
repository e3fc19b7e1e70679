package ports

import (
	"context"

	"github.com/rankmath/repair-action-scheduler/internal/domain/models"
)

// Notifier is the surface that shows the deferred audit trail to an operator once.
type Notifier interface {
	Notify(ctx context.Context, notice models.Notice) error
}
