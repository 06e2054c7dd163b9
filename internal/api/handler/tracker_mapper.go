package handler

import (
	"github.com/99minutos/tracker-dashboard/internal/core/domain"
	"github.com/99minutos/tracker-dashboard/internal/core/ports"
)

// --- Request → Service input ---

func toListInput(req listTrackersRequest) ports.ListTrackersInput {
	return ports.ListTrackersInput{
		TrackerQuery: ports.TrackerQuery{
			Query:     req.Query,
			Status:    req.Status,
			Carrier:   req.Carrier,
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
		},
		Page:  req.Page,
		Limit: req.Limit,
	}
}

func toExportInput(req exportTrackersRequest) ports.ExportTrackersInput {
	return ports.ExportTrackersInput{
		TrackerQuery: ports.TrackerQuery{
			Query:     req.Query,
			Status:    req.Status,
			Carrier:   req.Carrier,
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
		},
		Format: req.Format,
	}
}

// --- Service result → HTTP response ---

func toListResponse(r *ports.ListTrackersResult) listTrackersResponse {
	items := make([]trackerSummaryResponse, len(r.Items))
	for i, t := range r.Items {
		items[i] = toSummaryResponse(t)
	}
	return listTrackersResponse{Trackers: items, TotalTrackers: r.Total}
}

func toSummaryResponse(t *domain.Tracker) trackerSummaryResponse {
	return trackerSummaryResponse{
		ID:            t.ID,
		TrackingCode:  t.TrackingCode,
		CurrentStatus: string(t.CurrentStatus),
		Carrier:       t.Carrier,
		ToAddress:     toAddressResponse(t.ToAddress),
		CreatedAt:     t.CreatedAt.UTC(),
	}
}

func toGetResponse(t *domain.Tracker) getTrackerResponse {
	resp := getTrackerResponse{
		ID:                t.ID,
		EasyPostTrackerID: t.EasyPostTrackerID,
		TrackingCode:      t.TrackingCode,
		CurrentStatus:     string(t.CurrentStatus),
		Carrier:           t.Carrier,
		PublicTrackingURL: t.PublicTrackingURL,
		ToAddress:         toAddressResponse(t.ToAddress),
		TrackingHistory:   toHistoryResponse(t.TrackingHistory),
		CreatedAt:         t.CreatedAt.UTC(),
	}
	if t.PostageLabelURL != "" {
		label := t.PostageLabelURL
		resp.PostageLabelURL = &label
	}
	if t.FromAddress != nil {
		from := toAddressResponse(*t.FromAddress)
		resp.FromAddress = &from
	}
	return resp
}

func toAddressResponse(a domain.Address) addressResponse {
	return addressResponse{
		Name:    a.Name,
		Street1: a.Street1,
		City:    a.City,
		State:   a.State,
		Zip:     a.Zip,
		Country: a.Country,
		Email:   a.Email,
		Phone:   a.Phone,
	}
}

func toHistoryResponse(items []domain.TrackingDetail) []trackingDetailResponse {
	out := make([]trackingDetailResponse, len(items))
	for i, d := range items {
		out[i] = trackingDetailResponse{
			Message:  d.Message,
			Status:   d.Status,
			Datetime: d.Datetime.UTC(),
			Source:   d.Source,
		}
		if d.Location != nil {
			out[i].Location = &locationResponse{
				City:    d.Location.City,
				State:   d.Location.State,
				Country: d.Location.Country,
				Zip:     d.Location.Zip,
			}
		}
	}
	return out
}
