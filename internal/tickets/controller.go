package tickets

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"casaroja/internal/events"
	"casaroja/internal/shared/utils/response"
	"casaroja/internal/transport"
	"casaroja/internal/users"
)

type Controller interface {
	Purchase(c *gin.Context)
	CheckIn(c *gin.Context)
	Cancel(c *gin.Context)
	GetTicket(c *gin.Context)
	GetMyTickets(c *gin.Context)
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

func (ctrl *controller) Purchase(c *gin.Context) {
	var req PurchaseTicketRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	userID, userType, ok := callerFromContext(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	ticket, err := ctrl.service.Purchase(c.Request.Context(), userID, userType, req)
	if err != nil {
		statusCode := http.StatusBadRequest
		switch {
		case errors.Is(err, ErrEventSoldOut), errors.Is(err, ErrEventNotBookable), errors.Is(err, transport.ErrTransportFull):
			statusCode = http.StatusConflict
		case errors.Is(err, events.ErrEventNotFound), errors.Is(err, transport.ErrTransportNotFound):
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Ticket purchased successfully", ticket, nil)
}

func (ctrl *controller) CheckIn(c *gin.Context) {
	var req CheckInRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	staffID, _, ok := callerFromContext(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	ticket, err := ctrl.service.CheckIn(c.Request.Context(), staffID, req.Code)
	if err != nil {
		statusCode := http.StatusBadRequest
		switch {
		case errors.Is(err, ErrTicketNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, ErrTicketAlreadyUsed), errors.Is(err, ErrTicketNotConfirmed):
			statusCode = http.StatusConflict
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Ticket checked in successfully", ticket, nil)
}

func (ctrl *controller) Cancel(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid ticket ID", nil, err.Error())
		return
	}

	var req CancelTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	userID, userType, ok := callerFromContext(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	ticket, err := ctrl.service.Cancel(c.Request.Context(), ticketID, userID, userType, req.Reason)
	if err != nil {
		statusCode := http.StatusBadRequest
		switch {
		case errors.Is(err, ErrTicketNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, ErrNotTicketOwner):
			statusCode = http.StatusForbidden
		case errors.Is(err, ErrTicketNotCancellable),
			errors.Is(err, ErrCancellationNotAllowed),
			errors.Is(err, ErrCancellationWindowClosed):
			statusCode = http.StatusConflict
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Ticket cancelled successfully", ticket, nil)
}

func (ctrl *controller) GetTicket(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid ticket ID", nil, err.Error())
		return
	}

	userID, userType, ok := callerFromContext(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	ticket, err := ctrl.service.GetTicketByID(ticketID, userID, userType)
	if err != nil {
		statusCode := http.StatusInternalServerError
		switch {
		case errors.Is(err, ErrTicketNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, ErrNotTicketOwner):
			statusCode = http.StatusForbidden
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Ticket retrieved successfully", ticket, nil)
}

func (ctrl *controller) GetMyTickets(c *gin.Context) {
	var query TicketListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	userID, _, ok := callerFromContext(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	tickets, err := ctrl.service.GetMyTickets(userID, query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Tickets retrieved successfully", tickets, nil)
}
