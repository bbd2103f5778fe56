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

// ValidationHandler serves the endpoints used by the boarding flow and by validation services.
type ValidationHandler struct {
	service booking.BookingUseCase
	log     *zap.Logger
}

func NewValidationHandler(service booking.BookingUseCase, log *zap.Logger) *ValidationHandler {
	return &ValidationHandler{service: service, log: log}
}

func (h *ValidationHandler) Register(router gin.IRoutes) {
	router.GET("/boardingpass/:subject", h.boardingPass)
	router.GET("/tokencontent/:subject", h.tokenContent)
	router.PUT("/result/:subject", h.result)
	router.GET("/validationStatus", h.validationStatus)
}

// boardingPass resolves the subject as a passenger id and falls back to the caller's session.
func (h *ValidationHandler) boardingPass(c *gin.Context) {
	ctx := c.Request.Context()
	subject := c.Param("subject")
	h.log.Debug("incoming boarding pass request", zap.String("subject", subject))

	b, err := h.service.GetByPassengerID(ctx, subject)
	if errors.Is(err, domain.ErrInvalidPassengerID) || errors.Is(err, domain.ErrBookingNotFound) {
		b, err = h.service.GetBySessionID(ctx, SessionID(c))
	}
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardingPass(b))
}

func (h *ValidationHandler) tokenContent(c *gin.Context) {
	subject := c.Param("subject")
	serviceID := c.Query("service")
	h.log.Debug("incoming token content request", zap.String("subject", subject), zap.String("service", serviceID))

	b, err := h.service.GetOnlyPassengerID(c.Request.Context(), subject, serviceID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookingResponse(b))
}

func (h *ValidationHandler) result(c *gin.Context) {
	var req dto.ResultStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	subject := c.Param("subject")
	h.log.Debug("incoming result", zap.String("subject", subject))

	updated, err := h.service.UpdateResult(c.Request.Context(), subject, req)
	if err != nil {
		writeError(c, err)
		return
	}
	h.log.Debug("result applied", zap.String("subject", subject), zap.Int("updated", updated))

	c.Status(http.StatusOK)
}

func (h *ValidationHandler) validationStatus(c *gin.Context) {
	ok, err := h.service.ExistsDccBySessionID(c.Request.Context(), SessionID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.Status(http.StatusOK)
}
