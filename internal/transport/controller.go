package transport

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"casaroja/internal/shared/utils/response"
)

type Controller interface {
	CreateService(c *gin.Context)
	GetService(c *gin.Context)
	UpdateService(c *gin.Context)
	GetEventServices(c *gin.Context)
	GetMyServices(c *gin.Context)
	GetServicePassengers(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func providerUUIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	parsed, err := uuid.Parse(userID.(string))
	if err != nil {
		return uuid.Nil, false
	}
	return parsed, true
}

func (ctrl *controller) CreateService(c *gin.Context) {
	var req CreateTransportServiceRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	providerID, ok := providerUUIDFromContext(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	transportService, err := ctrl.service.CreateService(providerID, req)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Transport service created successfully", transportService, nil)
}

func (ctrl *controller) GetService(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid transport service ID", nil, err.Error())
		return
	}

	transportService, err := ctrl.service.GetServiceByID(c.Request.Context(), serviceID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrTransportNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Transport service retrieved successfully", transportService, nil)
}

func (ctrl *controller) UpdateService(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid transport service ID", nil, err.Error())
		return
	}

	var req UpdateTransportServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	providerID, ok := providerUUIDFromContext(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	transportService, err := ctrl.service.UpdateService(serviceID, providerID, req)
	if err != nil {
		statusCode := http.StatusBadRequest
		if errors.Is(err, ErrTransportNotFound) {
			statusCode = http.StatusNotFound
		} else if err.Error() == "transport service does not belong to this provider" {
			statusCode = http.StatusForbidden
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Transport service updated successfully", transportService, nil)
}

func (ctrl *controller) GetEventServices(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return
	}

	services, err := ctrl.service.GetServicesByEvent(c.Request.Context(), eventID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Transport services retrieved successfully", services, nil)
}

func (ctrl *controller) GetMyServices(c *gin.Context) {
	providerID, ok := providerUUIDFromContext(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	services, err := ctrl.service.GetServicesByProvider(providerID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Transport services retrieved successfully", services, nil)
}

func (ctrl *controller) GetServicePassengers(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid transport service ID", nil, err.Error())
		return
	}

	passengers, err := ctrl.service.GetServicePassengers(serviceID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrTransportNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Passengers retrieved successfully", passengers, nil)
}
