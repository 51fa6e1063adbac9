package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lateshow/lateshow-api/internal/api/metrics"
	"github.com/lateshow/lateshow-api/internal/core/ports"
)

type EpisodeHandler struct {
	service ports.EpisodeService
}

func NewEpisodeHandler(service ports.EpisodeService) *EpisodeHandler {
	return &EpisodeHandler{service: service}
}

// List handles GET /episodes.
//
// @Summary      List episodes
// @Tags         episodes
// @Produce      json
// @Success      200  {array}   episodeResponse
// @Failure      500  {object}  errorResponse
// @Router       /episodes [get]
func (h *EpisodeHandler) List(c echo.Context) error {
	episodes, err := h.service.ListEpisodes(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEpisodeResponses(episodes))
}

// Get handles GET /episodes/:id.
//
// @Summary      Get an episode with its appearances
// @Tags         episodes
// @Produce      json
// @Param        id   path      int  true  "Episode ID"
// @Success      200  {object}  episodeDetailResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /episodes/{id} [get]
func (h *EpisodeHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.service.GetEpisode(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEpisodeDetailResponse(detail))
}

// Delete handles DELETE /episodes/:id. The episode's appearances go with it.
//
// @Summary      Delete an episode
// @Tags         episodes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Episode ID"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /episodes/{id} [delete]
func (h *EpisodeHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteEpisode(c.Request().Context(), id, actor); err != nil {
		return err
	}

	metrics.EpisodesDeletedTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Episode deleted successfully"})
}
