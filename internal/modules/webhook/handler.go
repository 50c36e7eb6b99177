package webhook

import (
	"errors"
	"net/http"
	"strings"

	"bookinghook/internal/middleware"
	"bookinghook/internal/pkg/payload"
	"bookinghook/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterWebhookRoutes mounts the delivery endpoint. Signature checks are the
// caller's middleware.
func (h *Handler) RegisterWebhookRoutes(rg *gin.RouterGroup) {
	rg.POST("/webhooks/bookings", h.ReceiveBooking)
}

// RegisterCheckinRoutes mounts the staff lookup endpoint behind auth.
func (h *Handler) RegisterCheckinRoutes(rg *gin.RouterGroup) {
	rg.GET("/checkin/:token", h.LookupCheckin)
}

// ReceiveBooking godoc
// @Summary      Receive booking webhook
// @Description  Normalizes an event or appointment booking and stores it once per booking id
// @Tags         Webhooks
// @Accept       json
// @Produce      json
// @Success      201 {object} IngestResult
// @Success      200 {object} IngestResult
// @Failure      400 {object} response.Envelope
// @Failure      401 {object} response.Envelope
// @Failure      409 {object} response.Envelope
// @Router       /webhooks/bookings [post]
func (h *Handler) ReceiveBooking(c *gin.Context) {
	var body payload.Object
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid JSON body")
		return
	}

	res, err := h.service.Ingest(c.Request.Context(), body, flattenHeaders(c.Request.Header))
	if err != nil {
		log := middleware.Logger(c).WithError(err)
		switch {
		case errors.Is(err, ErrBrokenContract):
			log.Error("booking record failed contract check")
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build booking record")
		case errors.Is(err, ErrValidation):
			log.Warn("booking payload rejected")
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking payload", errorDetail(err))
		case errors.Is(err, ErrDuplicateInFlight):
			response.Error(c, http.StatusConflict, "DUPLICATE_IN_FLIGHT", "This booking is already being processed")
		default:
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process booking")
		}
		return
	}

	status := http.StatusCreated
	if res.Duplicate {
		status = http.StatusOK
	}
	response.Success(c, status, res)
}

// LookupCheckin godoc
// @Summary      Look up a check-in token
// @Tags         Checkin
// @Security     BearerAuth
// @Produce      json
// @Param        token path string true "QR token"
// @Success      200 {object} domain.BookingRecord
// @Failure      404 {object} response.Envelope
// @Router       /checkin/{token} [get]
func (h *Handler) LookupCheckin(c *gin.Context) {
	token := strings.TrimSpace(c.Param("token"))
	rec, err := h.service.GetByToken(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Unknown check-in token")
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to look up check-in token")
		return
	}

	middleware.Logger(c).WithFields(logrus.Fields{
		"staff_id":   c.GetString("staff_id"),
		"booking_id": rec.BookingID,
	}).Info("check-in lookup")
	response.Success(c, http.StatusOK, rec)
}

func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}

func errorDetail(err error) string {
	for _, cause := range []error{ErrMissingData, ErrUnknownShape, ErrMissingBookingID, ErrMissingCustomerEmail} {
		if errors.Is(err, cause) {
			return cause.Error()
		}
	}
	return err.Error()
}
