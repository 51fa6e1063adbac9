package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lateshow/lateshow-api/internal/api/metrics"
	"github.com/lateshow/lateshow-api/internal/core/ports"
)

const (
	headerIdempotencyKey      = "Idempotency-Key"
	headerIdempotentReplayed  = "Idempotent-Replayed"
	msgAppearanceFieldMissing = "Rating, guest_id, and episode_id are required"
)

type AppearanceHandler struct {
	service ports.AppearanceService
}

func NewAppearanceHandler(service ports.AppearanceService) *AppearanceHandler {
	return &AppearanceHandler{service: service}
}

// Create handles POST /appearances.
//
// @Summary      Record a guest appearance on an episode
// @Tags         appearances
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                   false  "Replays the first result for a repeated key"
// @Param        body             body      createAppearanceRequest  true   "Rating (1-5), guest and episode"
// @Success      201              {object}  appearanceResponse
// @Success      200              {object}  appearanceResponse  "Idempotent replay"
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /appearances [post]
func (h *AppearanceHandler) Create(c echo.Context) error {
	var req createAppearanceRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if req.Rating == nil || req.GuestID == nil || req.EpisodeID == nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgAppearanceFieldMissing)
	}

	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	result, err := h.service.CreateAppearance(c.Request().Context(), ports.CreateAppearanceInput{
		Rating:         *req.Rating,
		GuestID:        *req.GuestID,
		EpisodeID:      *req.EpisodeID,
		Actor:          actor,
		IdempotencyKey: c.Request().Header.Get(headerIdempotencyKey),
	})
	if err != nil {
		return err
	}

	if result.AlreadyExisted {
		metrics.IdempotentReplaysTotal.Inc()
		c.Response().Header().Set(headerIdempotentReplayed, "true")
		return c.JSON(http.StatusOK, toAppearanceResponse(result.Appearance))
	}

	metrics.AppearancesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toAppearanceResponse(result.Appearance))
}

// Get handles GET /appearances/:id.
//
// @Summary      Get an appearance
// @Tags         appearances
// @Produce      json
// @Param        id   path      int  true  "Appearance ID"
// @Success      200  {object}  appearanceResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /appearances/{id} [get]
func (h *AppearanceHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	a, err := h.service.GetAppearance(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAppearanceResponse(*a))
}
