package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/tracker-dashboard/internal/core/domain"
	"github.com/99minutos/tracker-dashboard/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubTrackerRepo struct {
	trackers   []*domain.Tracker
	err        error
	lastFilter domain.TrackerFilter
	lastSkip   int
	findByID   int // number of FindByID calls
}

// sorted returns the trackers matching f, newest first, like the Mongo query.
func (r *stubTrackerRepo) sorted(f domain.TrackerFilter) []*domain.Tracker {
	var out []*domain.Tracker
	for _, t := range r.trackers {
		if f.Matches(t) {
			clone := *t
			out = append(out, &clone)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *stubTrackerRepo) List(_ context.Context, f domain.TrackerFilter, page, limit int) ([]*domain.Tracker, int64, error) {
	r.lastFilter = f
	if r.err != nil {
		return nil, 0, r.err
	}
	matched := r.sorted(f)
	skip := (page - 1) * limit
	r.lastSkip = skip
	if skip < 0 {
		return nil, 0, fmt.Errorf("negative skip %d", skip)
	}
	if skip >= len(matched) {
		return nil, int64(len(matched)), nil
	}
	end := min(skip+limit, len(matched))
	return matched[skip:end], int64(len(matched)), nil
}

func (r *stubTrackerRepo) FindAll(_ context.Context, f domain.TrackerFilter) ([]*domain.Tracker, error) {
	r.lastFilter = f
	if r.err != nil {
		return nil, r.err
	}
	return r.sorted(f), nil
}

func (r *stubTrackerRepo) FindByID(_ context.Context, id string) (*domain.Tracker, error) {
	r.findByID++
	if r.err != nil {
		return nil, r.err
	}
	for _, t := range r.trackers {
		if t.ID == id {
			clone := *t
			return &clone, nil
		}
	}
	return nil, domain.ErrTrackerNotFound
}

type stubWriter struct {
	format string
	err    error
	rows   []ports.ExportRow
}

func (w *stubWriter) Format() string      { return w.format }
func (w *stubWriter) Extension() string   { return w.format }
func (w *stubWriter) ContentType() string { return "application/x-" + w.format }

func (w *stubWriter) Write(_ context.Context, rows []ports.ExportRow) ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	w.rows = rows
	return []byte(fmt.Sprintf("%d rows", len(rows))), nil
}

type stubCache struct {
	items  map[string]*domain.Tracker
	getErr error
	setErr error
	sets   int
}

func newStubCache() *stubCache {
	return &stubCache{items: make(map[string]*domain.Tracker)}
}

func (c *stubCache) Get(_ context.Context, id string) (*domain.Tracker, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.items[id], nil
}

func (c *stubCache) Set(_ context.Context, t *domain.Tracker) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.sets++
	c.items[t.ID] = t
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

var baseTime = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// seedTrackers creates n trackers; tracker i is created i hours after baseTime.
func seedTrackers(n int) []*domain.Tracker {
	out := make([]*domain.Tracker, n)
	for i := range out {
		out[i] = &domain.Tracker{
			ID:            fmt.Sprintf("%024x", i+1),
			TrackingCode:  fmt.Sprintf("TRK%04d", i),
			CurrentStatus: domain.StatusInTransit,
			Carrier:       "USPS",
			ToAddress:     domain.Address{Name: fmt.Sprintf("Customer %d", i), City: "Austin", State: "TX"},
			CreatedAt:     baseTime.Add(time.Duration(i) * time.Hour),
		}
	}
	return out
}

func newTestService(repo *stubTrackerRepo, opts ...Option) (*TrackerService, *stubWriter) {
	w := &stubWriter{format: "xlsx"}
	return NewTrackerService(repo, []ports.SheetWriter{w, &stubWriter{format: "csv"}}, discardLogger, opts...), w
}

// ---------------------------------------------------------------------------
// ListTrackers
// ---------------------------------------------------------------------------

func TestListTrackers_Defaults(t *testing.T) {
	repo := &stubTrackerRepo{trackers: seedTrackers(30)}
	svc, _ := newTestService(repo)

	res, err := svc.ListTrackers(context.Background(), ports.ListTrackersInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Page != 1 || res.Limit != 20 {
		t.Errorf("expected page=1 limit=20, got page=%d limit=%d", res.Page, res.Limit)
	}
	if len(res.Items) != 20 {
		t.Errorf("expected 20 items, got %d", len(res.Items))
	}
	if res.Total != 30 {
		t.Errorf("expected total 30, got %d", res.Total)
	}
	if res.TotalPages != 2 {
		t.Errorf("expected 2 pages, got %d", res.TotalPages)
	}
}

func TestListTrackers_SecondPageIsRanks21To40(t *testing.T) {
	repo := &stubTrackerRepo{trackers: seedTrackers(45)}
	svc, _ := newTestService(repo)

	first, err := svc.ListTrackers(context.Background(), ports.ListTrackersInput{Page: 1, Limit: 20})
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.ListTrackers(context.Background(), ports.ListTrackersInput{Page: 2, Limit: 20})
	if err != nil {
		t.Fatal(err)
	}

	if len(second.Items) != 20 {
		t.Fatalf("expected 20 items on page 2, got %d", len(second.Items))
	}
	// Newest is tracker 44, so rank 21 is tracker 24 and rank 40 is tracker 5.
	if second.Items[0].TrackingCode != "TRK0024" {
		t.Errorf("rank 21: want TRK0024, got %s", second.Items[0].TrackingCode)
	}
	if second.Items[19].TrackingCode != "TRK0005" {
		t.Errorf("rank 40: want TRK0005, got %s", second.Items[19].TrackingCode)
	}
	if !first.Items[19].CreatedAt.After(second.Items[0].CreatedAt) {
		t.Error("pages must be contiguous in descending created_at order")
	}
	if first.Total != second.Total {
		t.Errorf("total must not depend on the page: %d vs %d", first.Total, second.Total)
	}
}

func TestListTrackers_PageBeyondLast(t *testing.T) {
	repo := &stubTrackerRepo{trackers: seedTrackers(5)}
	svc, _ := newTestService(repo)

	res, err := svc.ListTrackers(context.Background(), ports.ListTrackersInput{Page: 9, Limit: 20})
	if err != nil {
		t.Fatal(err)
	}
	if res.Items == nil || len(res.Items) != 0 {
		t.Errorf("expected empty non-nil items, got %v", res.Items)
	}
	if res.Total != 5 {
		t.Errorf("expected total 5, got %d", res.Total)
	}
}

func TestListTrackers_HugePageIsPastTheEnd(t *testing.T) {
	repo := &stubTrackerRepo{trackers: seedTrackers(5)}
	svc, _ := newTestService(repo)

	page := math.MaxInt/100 + 2
	res, err := svc.ListTrackers(context.Background(), ports.ListTrackersInput{Page: page, Limit: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Items) != 0 {
		t.Errorf("expected no items past the last page, got %d", len(res.Items))
	}
	if res.Total != 5 {
		t.Errorf("expected total 5, got %d", res.Total)
	}
	if res.Page != page {
		t.Errorf("result must echo the requested page %d, got %d", page, res.Page)
	}
	if repo.lastSkip < 0 {
		t.Errorf("repository received a negative offset %d", repo.lastSkip)
	}
}

func TestListTrackers_LimitCapped(t *testing.T) {
	repo := &stubTrackerRepo{trackers: seedTrackers(3)}

	svc, _ := newTestService(repo)
	res, _ := svc.ListTrackers(context.Background(), ports.ListTrackersInput{Limit: 5000})
	if res.Limit != 100 {
		t.Errorf("expected default cap 100, got %d", res.Limit)
	}

	svc, _ = newTestService(repo, WithMaxLimit(50))
	res, _ = svc.ListTrackers(context.Background(), ports.ListTrackersInput{Limit: 5000})
	if res.Limit != 50 {
		t.Errorf("expected configured cap 50, got %d", res.Limit)
	}
}

func TestListTrackers_NoMatches(t *testing.T) {
	repo := &stubTrackerRepo{trackers: seedTrackers(10)}
	svc, _ := newTestService(repo)

	res, err := svc.ListTrackers(context.Background(), ports.ListTrackersInput{
		TrackerQuery: ports.TrackerQuery{Status: "delivered", Carrier: "UPS"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Items) != 0 || res.Total != 0 {
		t.Errorf("expected no results, got %d items total %d", len(res.Items), res.Total)
	}
}

func TestListTrackers_FiltersAreConjunctive(t *testing.T) {
	trackers := seedTrackers(10)
	for i, tr := range trackers {
		if i%2 == 0 {
			tr.Carrier = "UPS"
		}
		if i%3 == 0 {
			tr.CurrentStatus = domain.StatusDelivered
		}
	}
	repo := &stubTrackerRepo{trackers: trackers}
	svc, _ := newTestService(repo)
	ctx := context.Background()

	all, _ := svc.ListTrackers(ctx, ports.ListTrackersInput{})
	byCarrier, _ := svc.ListTrackers(ctx, ports.ListTrackersInput{TrackerQuery: ports.TrackerQuery{Carrier: "UPS"}})
	both, _ := svc.ListTrackers(ctx, ports.ListTrackersInput{TrackerQuery: ports.TrackerQuery{Carrier: "UPS", Status: "delivered"}})

	// UPS: 0,2,4,6,8. Delivered: 0,3,6,9. Both: 0,6.
	if all.Total != 10 || byCarrier.Total != 5 || both.Total != 2 {
		t.Errorf("unexpected totals: all=%d carrier=%d both=%d", all.Total, byCarrier.Total, both.Total)
	}
}

func TestListTrackers_EndDateInclusive(t *testing.T) {
	repo := &stubTrackerRepo{trackers: []*domain.Tracker{
		{TrackingCode: "LAST-MS", CreatedAt: time.Date(2025, 1, 5, 23, 59, 59, 999_000_000, time.UTC)},
		{TrackingCode: "NEXT-DAY", CreatedAt: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)},
	}}
	svc, _ := newTestService(repo)

	res, err := svc.ListTrackers(context.Background(), ports.ListTrackersInput{
		TrackerQuery: ports.TrackerQuery{EndDate: "2025-01-05"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 1 || res.Items[0].TrackingCode != "LAST-MS" {
		t.Errorf("expected only LAST-MS, got %+v", res.Items)
	}
}

func TestListTrackers_InvalidDateSkipsStore(t *testing.T) {
	repo := &stubTrackerRepo{trackers: seedTrackers(1)}
	svc, _ := newTestService(repo)

	_, err := svc.ListTrackers(context.Background(), ports.ListTrackersInput{
		TrackerQuery: ports.TrackerQuery{StartDate: "not-a-date"},
	})
	if !errors.Is(err, domain.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if !repo.lastFilter.IsEmpty() {
		t.Error("store must not be queried for malformed input")
	}
}

func TestListTrackers_RepoError(t *testing.T) {
	repo := &stubTrackerRepo{err: errors.New("connection refused")}
	svc, _ := newTestService(repo)

	_, err := svc.ListTrackers(context.Background(), ports.ListTrackersInput{})
	if err == nil {
		t.Fatal("expected error when repo fails")
	}
}

func TestListTrackers_Idempotent(t *testing.T) {
	repo := &stubTrackerRepo{trackers: seedTrackers(25)}
	svc, _ := newTestService(repo)
	in := ports.ListTrackersInput{TrackerQuery: ports.TrackerQuery{Query: "trk00"}, Page: 1, Limit: 5}

	a, _ := svc.ListTrackers(context.Background(), in)
	b, _ := svc.ListTrackers(context.Background(), in)

	if a.Total != b.Total || len(a.Items) != len(b.Items) {
		t.Fatalf("repeated request differs: %d/%d vs %d/%d", a.Total, len(a.Items), b.Total, len(b.Items))
	}
	for i := range a.Items {
		if a.Items[i].TrackingCode != b.Items[i].TrackingCode {
			t.Errorf("item %d differs: %s vs %s", i, a.Items[i].TrackingCode, b.Items[i].TrackingCode)
		}
	}
}

// ---------------------------------------------------------------------------
// ExportTrackers
// ---------------------------------------------------------------------------

func TestExportTrackers_RowCountMatchesListTotal(t *testing.T) {
	repo := &stubTrackerRepo{trackers: seedTrackers(150)}
	svc, w := newTestService(repo)
	q := ports.TrackerQuery{Query: "customer 1"}

	list, err := svc.ListTrackers(context.Background(), ports.ListTrackersInput{TrackerQuery: q})
	if err != nil {
		t.Fatal(err)
	}
	res, err := svc.ExportTrackers(context.Background(), ports.ExportTrackersInput{TrackerQuery: q})
	if err != nil {
		t.Fatal(err)
	}

	if int64(res.Rows) != list.Total {
		t.Errorf("export rows %d != list total %d", res.Rows, list.Total)
	}
	if len(w.rows) != res.Rows {
		t.Errorf("writer received %d rows, result says %d", len(w.rows), res.Rows)
	}
}

func TestExportTrackers_NoPaginationCap(t *testing.T) {
	repo := &stubTrackerRepo{trackers: seedTrackers(250)}
	svc, _ := newTestService(repo)

	res, err := svc.ExportTrackers(context.Background(), ports.ExportTrackersInput{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Rows != 250 {
		t.Errorf("expected all 250 rows, got %d", res.Rows)
	}
}

func TestExportTrackers_RowProjection(t *testing.T) {
	repo := &stubTrackerRepo{trackers: []*domain.Tracker{{
		TrackingCode:  "9400111899223817239473",
		CurrentStatus: domain.StatusDelivered,
		Carrier:       "USPS",
		ToAddress: domain.Address{
			Name: "Jane Doe", Street1: "1 Main St", City: "Austin", State: "TX", Zip: "78701",
			Email: "jane@example.com", Phone: "5125550100",
		},
		CreatedAt: time.Date(2025, 3, 4, 23, 30, 0, 0, time.UTC),
	}}}
	svc, w := newTestService(repo)

	if _, err := svc.ExportTrackers(context.Background(), ports.ExportTrackersInput{}); err != nil {
		t.Fatal(err)
	}

	want := ports.ExportRow{
		TrackingCode: "9400111899223817239473",
		Name:         "Jane Doe",
		Status:       "delivered",
		Carrier:      "USPS",
		Destination:  "Austin, TX",
		CreatedAt:    "3/4/2025",
		Phone:        "5125550100",
		Email:        "jane@example.com",
		Address:      "1 Main St, Austin, TX 78701",
	}
	if len(w.rows) != 1 || w.rows[0] != want {
		t.Errorf("row mismatch:\nwant %+v\ngot  %+v", want, w.rows)
	}
}

func TestExportTrackers_NewestFirst(t *testing.T) {
	repo := &stubTrackerRepo{trackers: seedTrackers(3)}
	svc, w := newTestService(repo)

	if _, err := svc.ExportTrackers(context.Background(), ports.ExportTrackersInput{}); err != nil {
		t.Fatal(err)
	}
	got := []string{w.rows[0].TrackingCode, w.rows[1].TrackingCode, w.rows[2].TrackingCode}
	want := []string{"TRK0002", "TRK0001", "TRK0000"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order: want %v, got %v", want, got)
		}
	}
}

func TestExportTrackers_Filename(t *testing.T) {
	repo := &stubTrackerRepo{}
	at := time.Date(2025, 8, 16, 9, 30, 45, 0, time.FixedZone("CST", -6*3600))
	svc, _ := newTestService(repo, WithClock(func() time.Time { return at }))

	res, err := svc.ExportTrackers(context.Background(), ports.ExportTrackersInput{})
	if err != nil {
		t.Fatal(err)
	}
	want := "Exported_shipment_details_list_2025-08-16_15-30.xlsx"
	if res.Filename != want {
		t.Errorf("filename: want %q, got %q", want, res.Filename)
	}
	if res.Rows != 0 {
		t.Errorf("expected 0 rows, got %d", res.Rows)
	}
}

func TestExportTrackers_Formats(t *testing.T) {
	repo := &stubTrackerRepo{trackers: seedTrackers(2)}
	svc, _ := newTestService(repo)

	res, err := svc.ExportTrackers(context.Background(), ports.ExportTrackersInput{Format: "CSV"})
	if err != nil {
		t.Fatal(err)
	}
	if res.ContentType != "application/x-csv" {
		t.Errorf("expected csv writer, got content type %q", res.ContentType)
	}

	_, err = svc.ExportTrackers(context.Background(), ports.ExportTrackersInput{Format: "pdf"})
	if !errors.Is(err, domain.ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestExportTrackers_FailuresAreAllOrNothing(t *testing.T) {
	repo := &stubTrackerRepo{err: errors.New("cursor killed")}
	svc, _ := newTestService(repo)
	res, err := svc.ExportTrackers(context.Background(), ports.ExportTrackersInput{})
	if err == nil || res != nil {
		t.Fatalf("store failure must yield no result, got %v, %v", res, err)
	}

	repo = &stubTrackerRepo{trackers: seedTrackers(2)}
	w := &stubWriter{format: "xlsx", err: errors.New("disk full")}
	svc = NewTrackerService(repo, []ports.SheetWriter{w}, discardLogger)
	res, err = svc.ExportTrackers(context.Background(), ports.ExportTrackersInput{})
	if err == nil || res != nil {
		t.Fatalf("writer failure must yield no result, got %v, %v", res, err)
	}
}

func TestExportTrackers_InvalidDate(t *testing.T) {
	svc, _ := newTestService(&stubTrackerRepo{})
	_, err := svc.ExportTrackers(context.Background(), ports.ExportTrackersInput{
		TrackerQuery: ports.TrackerQuery{EndDate: "2025-02-30"},
	})
	if !errors.Is(err, domain.ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// GetTracker
// ---------------------------------------------------------------------------

func TestGetTracker_InvalidID(t *testing.T) {
	repo := &stubTrackerRepo{}
	svc, _ := newTestService(repo)

	for _, id := range []string{"", "abc", "zzzzzzzzzzzzzzzzzzzzzzzz", "0123456789abcdef012345678"} {
		_, err := svc.GetTracker(context.Background(), id)
		if !errors.Is(err, domain.ErrInvalidTrackerID) {
			t.Errorf("id=%q: expected ErrInvalidTrackerID, got %v", id, err)
		}
	}
	if repo.findByID != 0 {
		t.Error("store must not be queried for an invalid id")
	}
}

func TestGetTracker_NotFound(t *testing.T) {
	svc, _ := newTestService(&stubTrackerRepo{})
	_, err := svc.GetTracker(context.Background(), "64b7f0c2e1d3a4b5c6d7e8f9")
	if !errors.Is(err, domain.ErrTrackerNotFound) {
		t.Errorf("expected ErrTrackerNotFound, got %v", err)
	}
}

func TestGetTracker_ReadThroughCache(t *testing.T) {
	repo := &stubTrackerRepo{trackers: seedTrackers(1)}
	cache := newStubCache()
	svc, _ := newTestService(repo, WithCache(cache))
	id := repo.trackers[0].ID

	for i := 0; i < 3; i++ {
		got, err := svc.GetTracker(context.Background(), id)
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if got.TrackingCode != "TRK0000" {
			t.Errorf("call %d: wrong tracker %s", i, got.TrackingCode)
		}
	}
	if repo.findByID != 1 {
		t.Errorf("expected a single store read, got %d", repo.findByID)
	}
	if cache.sets != 1 {
		t.Errorf("expected a single cache write, got %d", cache.sets)
	}
}

func TestGetTracker_CacheFailuresAreBypassed(t *testing.T) {
	repo := &stubTrackerRepo{trackers: seedTrackers(1)}
	cache := newStubCache()
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")
	svc, _ := newTestService(repo, WithCache(cache))

	got, err := svc.GetTracker(context.Background(), repo.trackers[0].ID)
	if err != nil {
		t.Fatalf("cache errors must not fail the request: %v", err)
	}
	if got == nil || repo.findByID != 1 {
		t.Error("expected the store to serve the request")
	}
}
