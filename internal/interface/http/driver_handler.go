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

type DriverHandler struct {
	Svc    *application.DriverService
	Logger *logrus.Logger
}

func NewDriverHandler(svc *application.DriverService, logger *logrus.Logger) *DriverHandler {
	return &DriverHandler{Svc: svc, Logger: logger}
}

type vehicleRequest struct {
	Make         string `json:"make" binding:"required"`
	Model        string `json:"model" binding:"required"`
	Year         int    `json:"year" binding:"required"`
	LicensePlate string `json:"licensePlate" binding:"required"`
}

type createDriverRequest struct {
	Vehicle      vehicleRequest `json:"vehicle" binding:"required"`
	VehicleTypes []string       `json:"vehicleTypes" binding:"required,min=1,dive,vehicletype"`
}

type updateAvailabilityRequest struct {
	IsAvailable *bool `json:"isAvailable" binding:"required"`
}

type updateVehicleTypesRequest struct {
	VehicleTypes []string `json:"vehicleTypes" binding:"required,min=1,dive,vehicletype"`
}

type driverView struct {
	ID           string         `json:"id"`
	UserID       string         `json:"user_id"`
	Vehicle      entity.Vehicle `json:"vehicle"`
	VehicleTypes []string       `json:"vehicle_types"`
	IsAvailable  bool           `json:"is_available"`
	Rating       float64        `json:"rating"`
	TotalRides   int            `json:"total_rides"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func toDriverView(d *entity.Driver) driverView {
	types := make([]string, 0, len(d.VehicleTypes))
	for _, t := range d.VehicleTypes {
		types = append(types, string(t))
	}
	return driverView{
		ID:           d.ID,
		UserID:       d.UserID,
		Vehicle:      d.Vehicle,
		VehicleTypes: types,
		IsAvailable:  d.IsAvailable,
		Rating:       d.Rating,
		TotalRides:   d.TotalRides,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func toVehicleTypes(types []string) []entity.VehicleType {
	out := make([]entity.VehicleType, 0, len(types))
	for _, t := range types {
		out = append(out, entity.VehicleType(t))
	}
	return out
}

// CreateProfile POST /api/drivers
func (h *DriverHandler) CreateProfile(c *gin.Context) {
	var req createDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)
	d, err := h.Svc.CreateProfile(c.Request.Context(), uid, application.CreateProfileInput{
		Vehicle: entity.Vehicle{
			Make:         req.Vehicle.Make,
			Model:        req.Vehicle.Model,
			Year:         req.Vehicle.Year,
			LicensePlate: req.Vehicle.LicensePlate,
		},
		VehicleTypes: toVehicleTypes(req.VehicleTypes),
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound),
			errors.Is(err, application.ErrNotADriver),
			errors.Is(err, application.ErrDriverProfileExists):
			response.Fail[any](c, http.StatusBadRequest, err.Error(), nil)
		default:
			h.Logger.WithError(err).Error("driver profile creation failed")
			response.Fail[any](c, http.StatusInternalServerError, "driver profile creation failed", nil)
		}
		return
	}
	response.Success(c, http.StatusCreated, toDriverView(d), "driver profile created", nil)
}

// GetProfile GET /api/drivers/profile
func (h *DriverHandler) GetProfile(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	d, err := h.Svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		response.Fail[any](c, http.StatusNotFound, "driver profile not found", nil)
		return
	}
	response.Success(c, http.StatusOK, toDriverView(d), "driver profile", nil)
}

// UpdateAvailability PATCH /api/drivers/availability
func (h *DriverHandler) UpdateAvailability(c *gin.Context) {
	var req updateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)
	d, err := h.Svc.SetAvailability(c.Request.Context(), uid, *req.IsAvailable)
	if err != nil {
		h.failDriverUpdate(c, err)
		return
	}
	response.Success(c, http.StatusOK, toDriverView(d), "availability updated", nil)
}

// UpdateVehicleTypes PATCH /api/drivers/vehicle-types
func (h *DriverHandler) UpdateVehicleTypes(c *gin.Context) {
	var req updateVehicleTypesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)
	d, err := h.Svc.SetVehicleTypes(c.Request.Context(), uid, toVehicleTypes(req.VehicleTypes))
	if err != nil {
		h.failDriverUpdate(c, err)
		return
	}
	response.Success(c, http.StatusOK, toDriverView(d), "vehicle types updated", nil)
}

// ListAvailable GET /api/drivers/available
func (h *DriverHandler) ListAvailable(c *gin.Context) {
	drivers, err := h.Svc.ListAvailable(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list available drivers failed")
		response.Fail[any](c, http.StatusBadRequest, "failed to list available drivers", nil)
		return
	}
	views := make([]driverView, 0, len(drivers))
	for _, d := range drivers {
		views = append(views, toDriverView(d))
	}
	response.Success(c, http.StatusOK, views, "available drivers", nil)
}

func (h *DriverHandler) failDriverUpdate(c *gin.Context, err error) {
	if errors.Is(err, application.ErrDriverNotFound) {
		response.Fail[any](c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	h.Logger.WithError(err).Error("driver update failed")
	response.Fail[any](c, http.StatusInternalServerError, "driver update failed", nil)
}
