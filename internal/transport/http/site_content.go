package http

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// GetSiteContent godoc
// @Summary Контент сайта
// @Description Значения по умолчанию, объединенные с сохраненными переопределениями.
// @Tags site-content
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Failure 503 {object} response.ErrorResponse
// @Router /api/site-content [get]
func (r *Routers) GetSiteContent(c echo.Context) error {
	const op = "http.routers.GetSiteContent"
	log := r.log.With(slog.String("op", op))

	content, out, err := r.SiteContentService.Get(c.Request().Context())
	if err != nil {
		return r.fail(c, log, err)
	}

	return reply(c, http.StatusOK, out, content, "")
}

// UpdateSiteContent godoc
// @Summary Обновление контента сайта
// @Description Частичный документ объединяется с сохраненным перед записью.
// @Tags site-content
// @Accept json
// @Produce json
// @Param request body object true "Секции для обновления"
// @Success 200 {object} response.Response{data=object}
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/site-content [put]
func (r *Routers) UpdateSiteContent(c echo.Context) error {
	const op = "http.routers.UpdateSiteContent"
	log := r.log.With(slog.String("op", op))

	partial, err := bindBody(c)
	if err != nil {
		return badRequest(c, err)
	}

	content, out, err := r.SiteContentService.Update(c.Request().Context(), partial)
	if err != nil {
		return r.fail(c, log, err)
	}

	return reply(c, http.StatusOK, out, content, "Site content saved")
}
