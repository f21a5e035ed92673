package payments

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"casaroja/internal/discounts"
	"casaroja/internal/shared/utils/response"
	"casaroja/internal/tickets"
	"casaroja/internal/users"
)

type Controller interface {
	CreatePayment(c *gin.Context)
	Webhook(c *gin.Context)
	GetPayment(c *gin.Context)
	GetMyPayments(c *gin.Context)
	GetCommission(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func callerFromContext(c *gin.Context) (uuid.UUID, users.UserType, bool) {
	rawID, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, "", false
	}
	userID, err := uuid.Parse(rawID.(string))
	if err != nil {
		return uuid.Nil, "", false
	}

	rawType, exists := c.Get("user_type")
	if !exists {
		return uuid.Nil, "", false
	}

	return userID, users.UserType(rawType.(string)), true
}

func (ctrl *controller) CreatePayment(c *gin.Context) {
	var req CreatePaymentRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	userID, _, ok := callerFromContext(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	payment, err := ctrl.service.CreatePayment(c.Request.Context(), userID, req)
	if err != nil {
		statusCode := http.StatusBadRequest
		switch {
		case errors.Is(err, tickets.ErrTicketNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, tickets.ErrNotTicketOwner):
			statusCode = http.StatusForbidden
		case errors.Is(err, ErrTicketNotPayable), errors.Is(err, ErrTicketAlreadyPaid):
			statusCode = http.StatusConflict
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Payment created successfully", payment, nil)
}

func (ctrl *controller) Webhook(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid payment ID", nil, err.Error())
		return
	}

	var req WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	payment, err := ctrl.service.HandleWebhook(c.Request.Context(), paymentID, req)
	if err != nil {
		statusCode := http.StatusBadRequest
		switch {
		case errors.Is(err, ErrPaymentNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, ErrPaymentSettled),
			errors.Is(err, ErrDuplicateCommission),
			errors.Is(err, discounts.ErrDiscountExhausted),
			errors.Is(err, discounts.ErrDiscountUserLimit):
			statusCode = http.StatusConflict
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Payment processed successfully", payment, nil)
}

func (ctrl *controller) GetPayment(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid payment ID", nil, err.Error())
		return
	}

	userID, userType, ok := callerFromContext(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	payment, err := ctrl.service.GetPaymentByID(paymentID, userID, userType)
	if err != nil {
		statusCode := http.StatusInternalServerError
		switch {
		case errors.Is(err, ErrPaymentNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, ErrNotPaymentOwner):
			statusCode = http.StatusForbidden
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Payment retrieved successfully", payment, nil)
}

func (ctrl *controller) GetMyPayments(c *gin.Context) {
	userID, _, ok := callerFromContext(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	payments, err := ctrl.service.GetMyPayments(userID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Payments retrieved successfully", payments, nil)
}

func (ctrl *controller) GetCommission(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid payment ID", nil, err.Error())
		return
	}

	userID, userType, ok := callerFromContext(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	commission, err := ctrl.service.GetCommission(paymentID, userID, userType)
	if err != nil {
		statusCode := http.StatusInternalServerError
		switch {
		case errors.Is(err, ErrPaymentNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, ErrNotPaymentOwner):
			statusCode = http.StatusForbidden
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Commission retrieved successfully", commission, nil)
}
