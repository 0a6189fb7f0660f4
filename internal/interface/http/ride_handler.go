package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/swiftride/api/internal/application"
	"github.com/swiftride/api/internal/domain/entity"
	"github.com/swiftride/api/internal/interface/middleware"
	"github.com/swiftride/api/pkg/response"
	"github.com/swiftride/api/pkg/validation"
)

type RideHandler struct {
	Svc    *application.RideService
	Logger *logrus.Logger
}

func NewRideHandler(svc *application.RideService, logger *logrus.Logger) *RideHandler {
	return &RideHandler{Svc: svc, Logger: logger}
}

type createRideRequest struct {
	PickupLocation string `json:"pickupLocation" binding:"required"`
	DropLocation   string `json:"dropLocation" binding:"required"`
	RideType       string `json:"rideType" binding:"required,vehicletype"`
}

type updateRideStatusRequest struct {
	Status string `json:"status" binding:"required,ridestatus"`
}

type rateRideRequest struct {
	Rating  int     `json:"rating" binding:"required,gte=1,lte=5"`
	Comment *string `json:"comment" binding:"omitempty,max=500"`
}

type rideView struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	DriverID       *string    `json:"driver_id,omitempty"`
	RiderName      string     `json:"rider_name,omitempty"`
	DriverName     string     `json:"driver_name,omitempty"`
	PickupAddress  string     `json:"pickup_address"`
	DropoffAddress string     `json:"dropoff_address"`
	RideType       string     `json:"ride_type"`
	Status         string     `json:"status"`
	Fare           int        `json:"fare"`
	Rating         *int       `json:"rating,omitempty"`
	RatingComment  *string    `json:"rating_comment,omitempty"`
	RequestedAt    time.Time  `json:"requested_at"`
	AcceptedAt     *time.Time `json:"accepted_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CancelledAt    *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func toRideView(r *entity.Ride) rideView {
	return rideView{
		ID:             r.ID,
		UserID:         r.UserID,
		DriverID:       r.DriverID,
		RiderName:      r.RiderName,
		DriverName:     r.DriverName,
		PickupAddress:  r.PickupAddress,
		DropoffAddress: r.DropoffAddress,
		RideType:       string(r.RideType),
		Status:         string(r.Status),
		Fare:           r.Fare,
		Rating:         r.Rating,
		RatingComment:  r.RatingComment,
		RequestedAt:    r.RequestedAt,
		AcceptedAt:     r.AcceptedAt,
		CompletedAt:    r.CompletedAt,
		CancelledAt:    r.CancelledAt,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func toRideViews(rides []*entity.Ride) []rideView {
	views := make([]rideView, 0, len(rides))
	for _, r := range rides {
		views = append(views, toRideView(r))
	}
	return views
}

// CreateRide POST /api/rides
func (h *RideHandler) CreateRide(c *gin.Context) {
	var req createRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)
	ride, err := h.Svc.CreateRide(c.Request.Context(), uid, application.CreateRideInput{
		PickupLocation: req.PickupLocation,
		DropLocation:   req.DropLocation,
		RideType:       entity.VehicleType(req.RideType),
	})
	if err != nil {
		h.Logger.WithError(err).Error("ride creation failed")
		response.Fail[any](c, http.StatusBadRequest, "ride creation failed", nil)
		return
	}
	response.Success(c, http.StatusCreated, toRideView(ride), "ride requested", nil)
}

// GetPendingRides GET /api/rides/pending?vehicleType=
func (h *RideHandler) GetPendingRides(c *gin.Context) {
	vt := entity.VehicleType(c.Query("vehicleType"))
	if vt != entity.VehicleCar && vt != entity.VehicleBike && vt != entity.VehicleRickshaw {
		response.Fail[any](c, http.StatusBadRequest, "invalid vehicle type", nil)
		return
	}
	rides, err := h.Svc.ListPendingRides(c.Request.Context(), vt)
	if err != nil {
		h.Logger.WithError(err).Error("pending rides lookup failed")
		response.Fail[any](c, http.StatusBadRequest, "failed to list pending rides", nil)
		return
	}
	response.Success(c, http.StatusOK, toRideViews(rides), "pending rides", nil)
}

// GetRide GET /api/rides/:rideId
func (h *RideHandler) GetRide(c *gin.Context) {
	ride, err := h.Svc.GetRideByID(c.Request.Context(), c.Param("rideId"))
	if err != nil {
		response.Fail[any](c, http.StatusNotFound, "ride not found", nil)
		return
	}
	response.Success(c, http.StatusOK, toRideView(ride), "ride", nil)
}

// UpdateStatus PATCH /api/rides/:rideId/status
func (h *RideHandler) UpdateStatus(c *gin.Context) {
	var req updateRideStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)
	ride, err := h.Svc.UpdateStatus(c.Request.Context(), c.Param("rideId"), entity.RideStatus(req.Status), uid)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrRideNotFound):
			response.Fail[any](c, http.StatusNotFound, err.Error(), nil)
		case errors.Is(err, application.ErrInvalidTransition),
			errors.Is(err, application.ErrRideAlreadyAssigned):
			response.Fail[any](c, http.StatusBadRequest, err.Error(), nil)
		default:
			h.Logger.WithError(err).Error("ride status update failed")
			response.Fail[any](c, http.StatusInternalServerError, "ride status update failed", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, toRideView(ride), "ride status updated", nil)
}

// RateRide POST /api/rides/:rideId/rate
func (h *RideHandler) RateRide(c *gin.Context) {
	var req rateRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)
	ride, err := h.Svc.RateRide(c.Request.Context(), c.Param("rideId"), uid, req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrRideNotFound):
			response.Fail[any](c, http.StatusNotFound, err.Error(), nil)
		case errors.Is(err, application.ErrNotRideRequester):
			response.Fail[any](c, http.StatusForbidden, err.Error(), nil)
		case errors.Is(err, application.ErrRideNotCompleted),
			errors.Is(err, application.ErrAlreadyRated):
			response.Fail[any](c, http.StatusBadRequest, err.Error(), nil)
		default:
			h.Logger.WithError(err).Error("ride rating failed")
			response.Fail[any](c, http.StatusInternalServerError, "ride rating failed", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, toRideView(ride), "ride rated", nil)
}

// GetRideHistory GET /api/rides/history
func (h *RideHandler) GetRideHistory(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	rides, err := h.Svc.GetRideHistory(c.Request.Context(), uid)
	if err != nil {
		h.Logger.WithError(err).Error("ride history lookup failed")
		response.Fail[any](c, http.StatusBadRequest, "failed to list ride history", nil)
		return
	}
	response.Success(c, http.StatusOK, toRideViews(rides), "ride history", nil)
}
