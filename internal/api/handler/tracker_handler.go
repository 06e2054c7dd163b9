package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/tracker-dashboard/internal/api/metrics"
	"github.com/99minutos/tracker-dashboard/internal/core/domain"
	"github.com/99minutos/tracker-dashboard/internal/core/ports"
)

const (
	msgListFailed   = "failed to fetch trackers"
	msgExportFailed = "failed to export trackers"
)

// TrackerHandler serves the dashboard's tracker endpoints.
type TrackerHandler struct {
	service ports.TrackerService
}

func NewTrackerHandler(service ports.TrackerService) *TrackerHandler {
	return &TrackerHandler{service: service}
}

// List godoc
// @Summary      List trackers
// @Description  Returns one page of trackers matching the filters, newest first, plus the total match count.
// @Tags         trackers
// @Produce      json
// @Param        query      query     string  false  "Case-insensitive text matched against tracking code and recipient name"
// @Param        status     query     string  false  "Exact current status (e.g. in_transit)"
// @Param        carrier    query     string  false  "Exact carrier name"
// @Param        startDate  query     string  false  "Inclusive lower bound on creation date (YYYY-MM-DD)"
// @Param        endDate    query     string  false  "Inclusive upper bound on creation date (YYYY-MM-DD)"
// @Param        page       query     int     false  "1-based page number"  default(1)
// @Param        limit      query     int     false  "Page size"            default(20)
// @Success      200        {object}  listTrackersResponse
// @Failure      400        {object}  errorResponse
// @Failure      500        {object}  errorResponse
// @Router       /api/trackers [get]
func (h *TrackerHandler) List(c echo.Context) error {
	var req listTrackersRequest
	if err := c.Bind(&req); err != nil {
		metrics.TrackerRequestsTotal.WithLabelValues("list", "invalid").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := c.Validate(&req); err != nil {
		metrics.TrackerRequestsTotal.WithLabelValues("list", "invalid").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.service.ListTrackers(c.Request().Context(), toListInput(req))
	if err != nil {
		metrics.TrackerRequestsTotal.WithLabelValues("list", resultLabel(err)).Inc()
		return serviceError(err, msgListFailed)
	}

	metrics.TrackerRequestsTotal.WithLabelValues("list", "ok").Inc()
	return c.JSON(http.StatusOK, toListResponse(res))
}

// Export godoc
// @Summary      Export trackers
// @Description  Streams every tracker matching the filters as a spreadsheet attachment. Pagination does not apply.
// @Tags         trackers
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      text/csv
// @Param        query      query     string  false  "Case-insensitive text matched against tracking code and recipient name"
// @Param        status     query     string  false  "Exact current status"
// @Param        carrier    query     string  false  "Exact carrier name"
// @Param        startDate  query     string  false  "Inclusive lower bound on creation date (YYYY-MM-DD)"
// @Param        endDate    query     string  false  "Inclusive upper bound on creation date (YYYY-MM-DD)"
// @Param        format     query     string  false  "Document format"  Enums(xlsx, csv)  default(xlsx)
// @Success      200        {file}    binary
// @Failure      400        {object}  errorResponse
// @Failure      500        {object}  errorResponse
// @Router       /api/export [get]
func (h *TrackerHandler) Export(c echo.Context) error {
	var req exportTrackersRequest
	if err := c.Bind(&req); err != nil {
		metrics.TrackerRequestsTotal.WithLabelValues("export", "invalid").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	req.Format = strings.ToLower(strings.TrimSpace(req.Format))
	if err := c.Validate(&req); err != nil {
		metrics.TrackerRequestsTotal.WithLabelValues("export", "invalid").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start := time.Now()
	res, err := h.service.ExportTrackers(c.Request().Context(), toExportInput(req))
	if err != nil {
		metrics.TrackerRequestsTotal.WithLabelValues("export", resultLabel(err)).Inc()
		return serviceError(err, msgExportFailed)
	}
	metrics.ExportDuration.WithLabelValues(formatLabel(req.Format)).Observe(time.Since(start).Seconds())
	metrics.ExportRows.Observe(float64(res.Rows))
	metrics.TrackerRequestsTotal.WithLabelValues("export", "ok").Inc()

	h.setAttachmentHeaders(c, res)
	return c.Blob(http.StatusOK, res.ContentType, res.Body)
}

// Get godoc
// @Summary      Get a tracker
// @Description  Returns one tracker with its full tracking history and sender address.
// @Tags         trackers
// @Produce      json
// @Param        id   path      string  true  "Tracker document id (24 hex characters)"
// @Success      200  {object}  getTrackerResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/trackers/{id} [get]
func (h *TrackerHandler) Get(c echo.Context) error {
	t, err := h.service.GetTracker(c.Request().Context(), c.Param("id"))
	if err != nil {
		metrics.TrackerRequestsTotal.WithLabelValues("get", resultLabel(err)).Inc()
		if errors.Is(err, domain.ErrTrackerNotFound) {
			return err
		}
		return serviceError(err, "failed to fetch tracker")
	}

	metrics.TrackerRequestsTotal.WithLabelValues("get", "ok").Inc()
	return c.JSON(http.StatusOK, toGetResponse(t))
}

func (h *TrackerHandler) setAttachmentHeaders(c echo.Context, res *ports.ExportResult) {
	hdr := c.Response().Header()
	hdr.Set(echo.HeaderContentDisposition, `attachment; filename="`+res.Filename+`"`)
	hdr.Set(echo.HeaderContentLength, strconv.Itoa(len(res.Body)))
	hdr.Set("Cache-Control", "no-store")
}

// serviceError passes client errors through to the central error handler and
// hides everything else behind a generic message.
func serviceError(err error, msg string) error {
	if isClientError(err) {
		return err
	}
	return echo.NewHTTPError(http.StatusInternalServerError, msg).SetInternal(err)
}

func isClientError(err error) bool {
	return errors.Is(err, domain.ErrInvalidDate) ||
		errors.Is(err, domain.ErrUnsupportedFormat) ||
		errors.Is(err, domain.ErrInvalidTrackerID)
}

func resultLabel(err error) string {
	switch {
	case isClientError(err):
		return "invalid"
	case errors.Is(err, domain.ErrTrackerNotFound):
		return "not_found"
	default:
		return "error"
	}
}

func formatLabel(format string) string {
	if format == "" {
		return "xlsx"
	}
	return format
}
