package service

import (
	"context"
	"encoding/hex"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/tracker-dashboard/internal/core/domain"
	"github.com/99minutos/tracker-dashboard/internal/core/ports"
)

const (
	defaultPage     = 1
	defaultLimit    = 20
	defaultMaxLimit = 100

	defaultExportFormat  = "xlsx"
	exportFilenamePrefix = "Exported_shipment_details_list_"
	exportStampLayout    = "2006-01-02_15-04"
	exportDateLayout     = "1/2/2006"
)

// TrackerCache abstracts the detail-view cache (Redis).
// Get returns nil without error on a miss.
type TrackerCache interface {
	Get(ctx context.Context, id string) (*domain.Tracker, error)
	Set(ctx context.Context, t *domain.Tracker) error
}

// Option customises a TrackerService.
type Option func(*TrackerService)

// WithCache enables the read-through detail cache.
func WithCache(c TrackerCache) Option {
	return func(s *TrackerService) { s.cache = c }
}

// WithMaxLimit caps the page size accepted by ListTrackers. Non-positive
// values keep the default.
func WithMaxLimit(n int) Option {
	return func(s *TrackerService) {
		if n > 0 {
			s.maxLimit = n
		}
	}
}

// WithClock replaces the clock used to stamp export filenames.
func WithClock(now func() time.Time) Option {
	return func(s *TrackerService) { s.now = now }
}

type TrackerService struct {
	repo     ports.TrackerRepository
	writers  map[string]ports.SheetWriter
	cache    TrackerCache
	maxLimit int
	now      func() time.Time
	logger   zerolog.Logger
}

func NewTrackerService(repo ports.TrackerRepository, writers []ports.SheetWriter, logger zerolog.Logger, opts ...Option) *TrackerService {
	s := &TrackerService{
		repo:     repo,
		writers:  make(map[string]ports.SheetWriter, len(writers)),
		maxLimit: defaultMaxLimit,
		now:      time.Now,
		logger:   logger,
	}
	for _, w := range writers {
		s.writers[w.Format()] = w
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListTrackers returns one page of trackers matching the query, newest first,
// and the total number of matches.
func (s *TrackerService) ListTrackers(ctx context.Context, input ports.ListTrackersInput) (*ports.ListTrackersResult, error) {
	filter, err := BuildFilter(input.TrackerQuery)
	if err != nil {
		return nil, err
	}

	if filter.Status != "" && !domain.TrackerStatus(filter.Status).Valid() {
		s.logger.Debug().Str("status", filter.Status).Msg("status filter is not a known carrier status")
	}

	page := input.Page
	if page < 1 {
		page = defaultPage
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	// Pages whose offset does not fit in an int are past the end of any store;
	// clamp so the repository still computes a valid offset and the count.
	storePage := page
	if maxPage := math.MaxInt/limit + 1; storePage > maxPage {
		storePage = maxPage
	}

	items, total, err := s.repo.List(ctx, filter, storePage, limit)
	if err != nil {
		return nil, fmt.Errorf("list trackers: %w", err)
	}
	if items == nil {
		items = []*domain.Tracker{}
	}

	s.logger.Debug().
		Int("page", page).
		Int("limit", limit).
		Int64("total", total).
		Msg("trackers listed")

	return &ports.ListTrackersResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

// ExportTrackers serializes every tracker matching the query into a single
// document. Nothing is returned unless the whole export succeeded.
func (s *TrackerService) ExportTrackers(ctx context.Context, input ports.ExportTrackersInput) (*ports.ExportResult, error) {
	format := strings.ToLower(strings.TrimSpace(input.Format))
	if format == "" {
		format = defaultExportFormat
	}
	w, ok := s.writers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}

	filter, err := BuildFilter(input.TrackerQuery)
	if err != nil {
		return nil, err
	}

	trackers, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("export trackers: %w", err)
	}

	rows := make([]ports.ExportRow, len(trackers))
	for i, t := range trackers {
		rows[i] = toExportRow(t)
	}

	body, err := w.Write(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("export trackers: write %s: %w", format, err)
	}

	s.logger.Info().Str("format", format).Int("rows", len(rows)).Msg("trackers exported")

	return &ports.ExportResult{
		Filename:    exportFilename(s.now(), w.Extension()),
		ContentType: w.ContentType(),
		Body:        body,
		Rows:        len(rows),
	}, nil
}

// GetTracker returns a single tracker with its sender address, consulting the
// cache first when one is configured. Cache failures never fail the request.
func (s *TrackerService) GetTracker(ctx context.Context, id string) (*domain.Tracker, error) {
	if !isObjectID(id) {
		return nil, domain.ErrInvalidTrackerID
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err != nil {
			s.logger.Warn().Err(err).Str("tracker_id", id).Msg("cache lookup failed, reading store")
		} else if cached != nil {
			return cached, nil
		}
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get tracker: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, t); err != nil {
			s.logger.Warn().Err(err).Str("tracker_id", id).Msg("failed to cache tracker")
		}
	}
	return t, nil
}

func toExportRow(t *domain.Tracker) ports.ExportRow {
	a := t.ToAddress
	return ports.ExportRow{
		TrackingCode: t.TrackingCode,
		Name:         a.Name,
		Status:       string(t.CurrentStatus),
		Carrier:      t.Carrier,
		Destination:  fmt.Sprintf("%s, %s", a.City, a.State),
		CreatedAt:    t.CreatedAt.UTC().Format(exportDateLayout),
		Phone:        a.Phone,
		Email:        a.Email,
		Address:      fmt.Sprintf("%s, %s, %s %s", a.Street1, a.City, a.State, a.Zip),
	}
}

// exportFilename stamps the export moment at minute precision in UTC, e.g.
// Exported_shipment_details_list_2025-08-16_09-30.xlsx.
func exportFilename(at time.Time, ext string) string {
	return exportFilenamePrefix + at.UTC().Format(exportStampLayout) + "." + ext
}

// isObjectID reports whether id is a 24 character hex document id.
func isObjectID(id string) bool {
	if len(id) != 24 {
		return false
	}
	_, err := hex.DecodeString(id)
	return err == nil
}
