package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/dccbooking/internal/domain"
	"github.com/Domenick1991/dccbooking/internal/dto"
	"github.com/Domenick1991/dccbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service booking.BookingUseCase
	log     *zap.Logger
}

func NewBookingHandler(service booking.BookingUseCase, log *zap.Logger) *BookingHandler {
	return &BookingHandler{service: service, log: log}
}

func (h *BookingHandler) Register(router gin.IRoutes) {
	router.POST("/booking", h.create)
	router.POST("/booking/replace", h.replace)
}

// create builds a booking for the caller's session; setDccStatus stamps demo results.
func (h *BookingHandler) create(c *gin.Context) {
	var req dto.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	sessionID := SessionID(c)
	status := domain.DevDccStatus(c.Query("setDccStatus"))
	h.log.Debug("incoming booking request",
		zap.String("session", sessionID),
		zap.String("reference", req.BookingReference),
		zap.String("setDccStatus", string(status)),
	)

	if err := h.service.Create(ctx, sessionID, req, status); err != nil {
		writeError(c, err)
		return
	}

	b, err := h.service.GetBySessionID(ctx, sessionID)
	if errors.Is(err, domain.ErrBookingNotFound) {
		b, err = h.service.GetByReference(ctx, req.BookingReference)
	}
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookingResponse(b))
}

func (h *BookingHandler) replace(c *gin.Context) {
	var req dto.BookingReplaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	sessionID := SessionID(c)
	h.log.Debug("incoming replace request", zap.String("session", sessionID), zap.String("reference", req.Reference))

	b, err := h.service.Replace(c.Request.Context(), sessionID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookingResponse(b))
}
