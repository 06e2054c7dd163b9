package ports

import (
	"context"

	"github.com/99minutos/tracker-dashboard/internal/core/domain"
)

// TrackerQuery carries the raw filter parameters shared by list and export.
// Dates are calendar days (YYYY-MM-DD); empty fields impose no condition.
type TrackerQuery struct {
	Query     string
	Status    string
	Carrier   string
	StartDate string
	EndDate   string
}

// ListTrackersInput carries all parameters for the list endpoint.
type ListTrackersInput struct {
	TrackerQuery
	Page  int // 1-based, defaults to 1
	Limit int // defaults to 20, capped by the service
}

// ListTrackersResult is returned by ListTrackers.
type ListTrackersResult struct {
	Items      []*domain.Tracker
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ExportTrackersInput carries the parameters for the export endpoint.
type ExportTrackersInput struct {
	TrackerQuery
	Format string // "xlsx" (default) or "csv"
}

// ExportResult is a fully serialized export ready to be sent as an attachment.
type ExportResult struct {
	Filename    string
	ContentType string
	Body        []byte
	Rows        int
}

// TrackerService defines the dashboard use cases.
type TrackerService interface {
	ListTrackers(ctx context.Context, input ListTrackersInput) (*ListTrackersResult, error)
	ExportTrackers(ctx context.Context, input ExportTrackersInput) (*ExportResult, error)
	GetTracker(ctx context.Context, id string) (*domain.Tracker, error)
}
