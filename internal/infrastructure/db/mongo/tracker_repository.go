package mongo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"github.com/99minutos/tracker-dashboard/internal/core/domain"
)

const (
	DefaultTrackersCollection  = "tracked_shipments"
	DefaultAddressesCollection = "company_addresses"

	fieldCreatedAt = "easypost_created_at"

	// exportTimeout bounds FindAll, which reads the whole filtered set.
	exportTimeout = 2 * time.Minute
)

var newestFirst = bson.D{{Key: fieldCreatedAt, Value: -1}}

// TrackerRepository implements ports.TrackerRepository using MongoDB.
type TrackerRepository struct {
	col       *mongo.Collection
	addresses string
}

// NewTrackerRepository reads trackers from trackersColl and joins sender
// addresses from addressesColl. Empty names fall back to the defaults.
func NewTrackerRepository(db *mongo.Database, trackersColl, addressesColl string) *TrackerRepository {
	if trackersColl == "" {
		trackersColl = DefaultTrackersCollection
	}
	if addressesColl == "" {
		addressesColl = DefaultAddressesCollection
	}
	return &TrackerRepository{col: db.Collection(trackersColl), addresses: addressesColl}
}

// List runs the page fetch and the count concurrently; both see the same filter.
func (r *TrackerRepository) List(ctx context.Context, filter domain.TrackerFilter, page, limit int) ([]*domain.Tracker, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := buildFilter(filter)
	opts := options.Find().
		SetSort(newestFirst).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"tracking_history": 0})

	var (
		items []*domain.Tracker
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cur, err := r.col.Find(gctx, query, opts)
		if err != nil {
			return fmt.Errorf("find trackers: %w", err)
		}
		if err := cur.All(gctx, &items); err != nil {
			return fmt.Errorf("decode trackers: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		n, err := r.col.CountDocuments(gctx, query)
		if err != nil {
			return fmt.Errorf("count trackers: %w", err)
		}
		total = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// FindAll returns every matching tracker, newest first.
func (r *TrackerRepository) FindAll(ctx context.Context, filter domain.TrackerFilter) ([]*domain.Tracker, error) {
	ctx, cancel := context.WithTimeout(ctx, exportTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(newestFirst).
		SetProjection(bson.M{"tracking_history": 0})

	cur, err := r.col.Find(ctx, buildFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("find trackers: %w", err)
	}
	var items []*domain.Tracker
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode trackers: %w", err)
	}
	return items, nil
}

// FindByID returns the tracker with its sender address looked up from the
// addresses collection through from_address_ref.
func (r *TrackerRepository) FindByID(ctx context.Context, id string) (*domain.Tracker, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidTrackerID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, detailPipeline(oid, r.addresses))
	if err != nil {
		return nil, fmt.Errorf("aggregate tracker: %w", err)
	}
	defer cur.Close(ctx)

	if !cur.Next(ctx) {
		if err := cur.Err(); err != nil {
			return nil, fmt.Errorf("aggregate tracker: %w", err)
		}
		return nil, domain.ErrTrackerNotFound
	}

	var t domain.Tracker
	if err := cur.Decode(&t); err != nil {
		return nil, fmt.Errorf("decode tracker: %w", err)
	}
	return &t, nil
}

// EnsureIndexes creates the indexes the dashboard queries rely on.
func (r *TrackerRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: newestFirst},
		{Keys: bson.D{{Key: "current_status", Value: 1}, {Key: fieldCreatedAt, Value: -1}}},
		{Keys: bson.D{{Key: "carrier", Value: 1}, {Key: fieldCreatedAt, Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// buildFilter translates a TrackerFilter into a Mongo query document.
// Free text is escaped so it is always matched literally.
func buildFilter(f domain.TrackerFilter) bson.M {
	var conds bson.A

	if f.Query != "" {
		pattern := bson.M{"$regex": regexp.QuoteMeta(f.Query), "$options": "i"}
		conds = append(conds, bson.M{"$or": bson.A{
			bson.M{"tracking_code": pattern},
			bson.M{"to_address.name": pattern},
		}})
	}
	if f.Status != "" {
		conds = append(conds, bson.M{"current_status": f.Status})
	}
	if f.Carrier != "" {
		conds = append(conds, bson.M{"carrier": f.Carrier})
	}
	if !f.CreatedFrom.IsZero() || !f.CreatedTo.IsZero() {
		bounds := bson.M{}
		if !f.CreatedFrom.IsZero() {
			bounds["$gte"] = f.CreatedFrom.UTC()
		}
		if !f.CreatedTo.IsZero() {
			bounds["$lte"] = f.CreatedTo.UTC()
		}
		conds = append(conds, bson.M{fieldCreatedAt: bounds})
	}

	if len(conds) == 0 {
		return bson.M{}
	}
	return bson.M{"$and": conds}
}

func detailPipeline(id primitive.ObjectID, addresses string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: addresses},
			{Key: "localField", Value: "from_address_ref"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "from_address_lookup"},
		}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "from_address", Value: bson.D{{Key: "$arrayElemAt", Value: bson.A{"$from_address_lookup", 0}}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "from_address_lookup", Value: 0},
			{Key: "from_address_ref", Value: 0},
		}}},
	}
}
