package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

// listTrackersRequest is bound from the query string of GET /api/trackers.
// Dates are validated by the service so that RFC 3339 timestamps are accepted too.
type listTrackersRequest struct {
	Query     string `query:"query"`
	Status    string `query:"status"`
	Carrier   string `query:"carrier"`
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
	Page      int    `query:"page"  validate:"omitempty,min=1"`
	Limit     int    `query:"limit" validate:"omitempty,min=1"`
}

// exportTrackersRequest is bound from the query string of GET /api/export.
type exportTrackersRequest struct {
	Query     string `query:"query"`
	Status    string `query:"status"`
	Carrier   string `query:"carrier"`
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
	Format    string `query:"format" validate:"omitempty,oneof=xlsx csv"`
}

// --- Response types ---
// These are owned by the transport layer so the JSON contract is not coupled
// to the stored document shape.

type addressResponse struct {
	Name    string `json:"name"`
	Street1 string `json:"street1"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

// trackerSummaryResponse is the row shown in the dashboard table.
// It omits tracking_history to keep list payloads small.
type trackerSummaryResponse struct {
	ID            string          `json:"_id"`
	TrackingCode  string          `json:"tracking_code"`
	CurrentStatus string          `json:"current_status"`
	Carrier       string          `json:"carrier"`
	ToAddress     addressResponse `json:"to_address"`
	CreatedAt     time.Time       `json:"easypost_created_at"`
}

type listTrackersResponse struct {
	Trackers      []trackerSummaryResponse `json:"trackers"`
	TotalTrackers int64                    `json:"totalTrackers"`
}

type locationResponse struct {
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
	Zip     string `json:"zip,omitempty"`
}

type trackingDetailResponse struct {
	Message  string            `json:"message"`
	Status   string            `json:"status"`
	Datetime time.Time         `json:"datetime"`
	Source   string            `json:"source"`
	Location *locationResponse `json:"location"`
}

type getTrackerResponse struct {
	ID                string                   `json:"_id"`
	EasyPostTrackerID string                   `json:"easypost_tracker_id"`
	TrackingCode      string                   `json:"tracking_code"`
	CurrentStatus     string                   `json:"current_status"`
	Carrier           string                   `json:"carrier"`
	PublicTrackingURL string                   `json:"public_tracking_url"`
	PostageLabelURL   *string                  `json:"postage_label_url"`
	ToAddress         addressResponse          `json:"to_address"`
	FromAddress       *addressResponse         `json:"from_address,omitempty"`
	TrackingHistory   []trackingDetailResponse `json:"tracking_history"`
	CreatedAt         time.Time                `json:"easypost_created_at"`
}
