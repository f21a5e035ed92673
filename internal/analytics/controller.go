package analytics

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"casaroja/internal/shared/utils/response"
	"casaroja/internal/users"
)

type Controller interface {
	GetEventRevenue(c *gin.Context)
	GetMyEarnings(c *gin.Context)
	GetPlatformOverview(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetEventRevenue(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return
	}

	rawID, _ := c.Get("user_id")
	callerID, err := uuid.Parse(rawID.(string))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}
	rawType, _ := c.Get("user_type")
	callerType := users.UserType(rawType.(string))

	revenue, err := ctrl.service.GetEventRevenue(c.Request.Context(), eventID, callerID, callerType)
	if err != nil {
		statusCode := http.StatusInternalServerError
		switch {
		case errors.Is(err, ErrEventNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, ErrNotEventCultor):
			statusCode = http.StatusForbidden
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Event revenue retrieved successfully", revenue, nil)
}

func (ctrl *controller) GetMyEarnings(c *gin.Context) {
	rawID, _ := c.Get("user_id")
	cultorID, err := uuid.Parse(rawID.(string))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	earnings, err := ctrl.service.GetCultorEarnings(c.Request.Context(), cultorID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Earnings retrieved successfully", earnings, nil)
}

func (ctrl *controller) GetPlatformOverview(c *gin.Context) {
	overview, err := ctrl.service.GetPlatformOverview(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Platform overview retrieved successfully", overview, nil)
}
