package domain

import (
	"errors"
	"time"
)

// TrackerStatus is the carrier-reported lifecycle state of a shipment.
type TrackerStatus string

const (
	StatusPreTransit     TrackerStatus = "pre_transit"
	StatusInTransit      TrackerStatus = "in_transit"
	StatusOutForDelivery TrackerStatus = "out_for_delivery"
	StatusDelivered      TrackerStatus = "delivered"
	StatusFailure        TrackerStatus = "failure"
	StatusCancelled      TrackerStatus = "cancelled"
	StatusUnknown        TrackerStatus = "unknown"
)

var knownStatuses = map[TrackerStatus]struct{}{
	StatusPreTransit:     {},
	StatusInTransit:      {},
	StatusOutForDelivery: {},
	StatusDelivered:      {},
	StatusFailure:        {},
	StatusCancelled:      {},
	StatusUnknown:        {},
}

// Valid reports whether s is one of the statuses carriers report.
func (s TrackerStatus) Valid() bool {
	_, ok := knownStatuses[s]
	return ok
}

var ErrTrackerNotFound = errors.New("tracker not found")
var ErrInvalidTrackerID = errors.New("invalid tracker id")
var ErrInvalidDate = errors.New("invalid date")
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Address is a postal address as stored on the tracker document.
type Address struct {
	Name    string `json:"name" bson:"name"`
	Street1 string `json:"street1" bson:"street1"`
	City    string `json:"city" bson:"city"`
	State   string `json:"state" bson:"state"`
	Zip     string `json:"zip" bson:"zip"`
	Country string `json:"country" bson:"country"`
	Email   string `json:"email" bson:"email"`
	Phone   string `json:"phone" bson:"phone"`
}

// EventLocation is where a carrier scanned the package. Every field may be empty.
type EventLocation struct {
	City    string `json:"city,omitempty" bson:"city,omitempty"`
	State   string `json:"state,omitempty" bson:"state,omitempty"`
	Country string `json:"country,omitempty" bson:"country,omitempty"`
	Zip     string `json:"zip,omitempty" bson:"zip,omitempty"`
}

// TrackingDetail is a single carrier event in a tracker's history.
type TrackingDetail struct {
	Message  string         `json:"message" bson:"message"`
	Status   string         `json:"status" bson:"status"`
	Datetime time.Time      `json:"datetime" bson:"datetime"`
	Source   string         `json:"source" bson:"source"`
	Location *EventLocation `json:"location,omitempty" bson:"location,omitempty"`
}

// Tracker is a carrier shipment followed by the dashboard. Documents are
// written by the ingestion side and never mutated here.
type Tracker struct {
	ID                string           `json:"_id" bson:"_id,omitempty"`
	EasyPostTrackerID string           `json:"easypost_tracker_id,omitempty" bson:"easypost_tracker_id,omitempty"`
	TrackingCode      string           `json:"tracking_code" bson:"tracking_code"`
	CurrentStatus     TrackerStatus    `json:"current_status" bson:"current_status"`
	Carrier           string           `json:"carrier" bson:"carrier"`
	PublicTrackingURL string           `json:"public_tracking_url,omitempty" bson:"public_tracking_url,omitempty"`
	PostageLabelURL   string           `json:"postage_label_url,omitempty" bson:"postage_label_url,omitempty"`
	ToAddress         Address          `json:"to_address" bson:"to_address"`
	FromAddress       *Address         `json:"from_address,omitempty" bson:"from_address,omitempty"`
	TrackingHistory   []TrackingDetail `json:"tracking_history,omitempty" bson:"tracking_history,omitempty"`
	CreatedAt         time.Time        `json:"easypost_created_at" bson:"easypost_created_at"`
}
