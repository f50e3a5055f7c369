package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reqdto "rentfleet/internal/handler/dto/request"
	resdto "rentfleet/internal/handler/dto/response"
	"rentfleet/internal/usecase/commands"
	"rentfleet/internal/usecase/queries"
)

type VehicleHandler struct {
	vehicleCommands commands.VehicleCommands
	vehicleQueries  queries.VehicleQueries
}

func NewVehicleHandler(vehicleCommands commands.VehicleCommands, vehicleQueries queries.VehicleQueries) *VehicleHandler {
	return &VehicleHandler{
		vehicleCommands: vehicleCommands,
		vehicleQueries:  vehicleQueries,
	}
}

// @Summary List vehicles
// @Description List active vehicles in the fleet
// @Tags vehicles
// @Produce json
// @Success 200 {array} resdto.VehicleResponse
// @Router /vehicles [get]
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	views, err := h.vehicleQueries.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	responses := make([]*resdto.VehicleResponse, len(views))
	for i, view := range views {
		responses[i] = resdto.FromVehicleView(view)
	}
	c.JSON(http.StatusOK, responses)
}

// @Summary Get vehicle
// @Description Get vehicle by ID
// @Tags vehicles
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} resdto.VehicleResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /vehicles/{id} [get]
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid vehicle ID",
		})
		return
	}

	view, err := h.vehicleQueries.GetByID(c.Request.Context(), vehicleID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrVehicleNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Vehicle not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromVehicleView(view))
}

// @Summary Get rental quote
// @Description Availability and full price breakdown for a date range
// @Tags vehicles
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param pickup_date query string true "Pickup date (YYYY-MM-DD)"
// @Param return_date query string true "Return date (YYYY-MM-DD)"
// @Success 200 {object} resdto.QuoteResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /vehicles/{id}/quote [get]
func (h *VehicleHandler) GetQuote(c *gin.Context) {
	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid vehicle ID",
		})
		return
	}

	var req reqdto.QuoteRequest
	if bindErr := c.ShouldBindQuery(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "pickup_date and return_date are required",
		})
		return
	}

	period, err := req.ToDateRange()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date range",
		})
		return
	}

	view, err := h.vehicleQueries.GetQuote(c.Request.Context(), vehicleID, period)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrVehicleNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Vehicle not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromQuoteView(view))
}

// @Summary Create vehicle
// @Description Register a new vehicle in the fleet (admin only)
// @Tags vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateVehicleRequest true "Vehicle request"
// @Success 201 {object} resdto.VehicleResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /vehicles [post]
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var req reqdto.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.vehicleCommands.CreateVehicle(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrVehicleValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Vehicle validation failed",
			})
		case errors.Is(err, commands.ErrDuplicateVehicle):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Vehicle already exists",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromVehicleView(view))
}

// @Summary Update vehicle
// @Description Update fleet vehicle details and rate rules (admin only)
// @Tags vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Vehicle ID"
// @Param request body reqdto.UpdateVehicleRequest true "Vehicle request"
// @Success 200 {object} resdto.VehicleResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /vehicles/{id} [put]
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid vehicle ID",
		})
		return
	}

	var req reqdto.UpdateVehicleRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.vehicleCommands.UpdateVehicle(c.Request.Context(), vehicleID, req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrVehicleNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Vehicle not found",
			})
		case errors.Is(err, commands.ErrVehicleValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Vehicle validation failed",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromVehicleView(view))
}
