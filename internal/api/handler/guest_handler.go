package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lateshow/lateshow-api/internal/core/ports"
)

type GuestHandler struct {
	service ports.GuestService
}

func NewGuestHandler(service ports.GuestService) *GuestHandler {
	return &GuestHandler{service: service}
}

// List handles GET /guests.
//
// @Summary      List guests
// @Tags         guests
// @Produce      json
// @Success      200  {array}   guestResponse
// @Failure      500  {object}  errorResponse
// @Router       /guests [get]
func (h *GuestHandler) List(c echo.Context) error {
	guests, err := h.service.ListGuests(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toGuestResponses(guests))
}
