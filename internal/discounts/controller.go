package discounts

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"casaroja/internal/shared/utils/response"
	"casaroja/internal/users"
)

type Controller interface {
	CreateDiscount(c *gin.Context)
	GetDiscount(c *gin.Context)
	UpdateDiscount(c *gin.Context)
	DeleteDiscount(c *gin.Context)
	GetEventDiscounts(c *gin.Context)
	PreviewDiscount(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateDiscount(c *gin.Context) {
	var req CreateDiscountRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	discount, err := ctrl.service.CreateDiscount(req)
	if err != nil {
		statusCode := http.StatusBadRequest
		if err.Error() == "a discount with this code already exists for the event" {
			statusCode = http.StatusConflict
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Discount created successfully", discount, nil)
}

func (ctrl *controller) GetDiscount(c *gin.Context) {
	discountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid discount ID", nil, err.Error())
		return
	}

	discount, err := ctrl.service.GetDiscountByID(discountID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrDiscountNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Discount retrieved successfully", discount, nil)
}

func (ctrl *controller) UpdateDiscount(c *gin.Context) {
	discountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid discount ID", nil, err.Error())
		return
	}

	var req UpdateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	discount, err := ctrl.service.UpdateDiscount(discountID, req)
	if err != nil {
		statusCode := http.StatusBadRequest
		if errors.Is(err, ErrDiscountNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Discount updated successfully", discount, nil)
}

func (ctrl *controller) DeleteDiscount(c *gin.Context) {
	discountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid discount ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteDiscount(discountID); err != nil {
		statusCode := http.StatusBadRequest
		if errors.Is(err, ErrDiscountNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Discount deleted successfully", nil, nil)
}

func (ctrl *controller) GetEventDiscounts(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return
	}

	discounts, err := ctrl.service.GetDiscountsByEvent(eventID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Discounts retrieved successfully", discounts, nil)
}

func (ctrl *controller) PreviewDiscount(c *gin.Context) {
	var req PreviewDiscountRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Invalid user ID format", nil, nil)
		return
	}

	userType := users.TypeClient
	if rawType, exists := c.Get("user_type"); exists {
		if typeStr, ok := rawType.(string); ok && users.UserType(typeStr).IsValid() {
			userType = users.UserType(typeStr)
		}
	}

	preview, err := ctrl.service.PreviewDiscount(userUUID, userType, req)
	if err != nil {
		statusCode := http.StatusBadRequest
		if errors.Is(err, ErrDiscountNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Discount preview generated", preview, nil)
}
