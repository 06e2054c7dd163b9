package ports

import (
	"context"

	"github.com/99minutos/tracker-dashboard/internal/core/domain"
)

// TrackerRepository defines read operations over the tracker collection.
// Every method is read-only; documents are owned by the ingestion side.
type TrackerRepository interface {
	// List returns one page of trackers matching filter ordered by created_at
	// descending, plus the number of trackers matching filter overall.
	// page is 1-based.
	List(ctx context.Context, filter domain.TrackerFilter, page, limit int) ([]*domain.Tracker, int64, error)
	// FindAll returns every tracker matching filter ordered by created_at descending.
	FindAll(ctx context.Context, filter domain.TrackerFilter) ([]*domain.Tracker, error)
	// FindByID returns the tracker with its sender address joined in.
	FindByID(ctx context.Context, id string) (*domain.Tracker, error)
}
