package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"ceylon_travel/internal/domain/normalizer"
	tours "ceylon_travel/internal/services/tour_service"
	"ceylon_travel/internal/transport/http/dto"
)

// ListTours godoc
// @Summary Список туров
// @Tags tours
// @Produce json
// @Param status query string false "active, draft или archived"
// @Param featured query bool false "Только featured"
// @Param limit query int false "Максимум записей"
// @Success 200 {object} response.Response{data=[]models.Tour}
// @Failure 400 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /api/tours [get]
func (r *Routers) ListTours(c echo.Context) error {
	const op = "http.routers.ListTours"
	log := r.log.With(slog.String("op", op))

	var q dto.TourListQuery
	if err := c.Bind(&q); err != nil {
		return badRequest(c, err)
	}
	if err := c.Validate(q); err != nil {
		return badRequest(c, err)
	}

	list, out, err := r.TourService.List(c.Request().Context(), tours.TourFilter{
		Status:   q.Status,
		Featured: q.FeaturedOnly(),
		Limit:    q.Limit,
	})
	if err != nil {
		return r.fail(c, log, err)
	}

	return reply(c, http.StatusOK, out, list, "")
}

// FeaturedTours godoc
// @Summary Featured туры
// @Description Активные featured туры, а если их нет, последние активные. Ответ кешируется.
// @Tags tours
// @Produce json
// @Success 200 {object} response.Response{data=[]models.Tour}
// @Failure 503 {object} response.ErrorResponse
// @Router /api/tours/featured [get]
func (r *Routers) FeaturedTours(c echo.Context) error {
	const op = "http.routers.FeaturedTours"
	log := r.log.With(slog.String("op", op))

	list, out, err := r.TourService.Featured(c.Request().Context())
	if err != nil {
		return r.fail(c, log, err)
	}

	if r.featuredMaxAge > 0 {
		c.Response().Header().Set(echo.HeaderCacheControl,
			fmt.Sprintf("public, max-age=%d", int(r.featuredMaxAge.Seconds())))
	}
	return reply(c, http.StatusOK, out, list, "")
}

// GetTour godoc
// @Summary Тур по id
// @Tags tours
// @Produce json
// @Param id path string true "ID тура"
// @Success 200 {object} response.Response{data=models.Tour}
// @Failure 404 {object} response.ErrorResponse
// @Router /api/tours/{id} [get]
func (r *Routers) GetTour(c echo.Context) error {
	const op = "http.routers.GetTour"
	log := r.log.With(slog.String("op", op))

	tour, out, err := r.TourService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return r.fail(c, log, err)
	}

	return reply(c, http.StatusOK, out, tour, "")
}

// CreateTour godoc
// @Summary Создание тура
// @Description id из тела игнорируется, его назначает хранилище.
// @Tags tours
// @Accept json
// @Produce json
// @Param request body models.Tour true "Тур"
// @Success 201 {object} response.Response{data=models.Tour}
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /api/tours [post]
func (r *Routers) CreateTour(c echo.Context) error {
	const op = "http.routers.CreateTour"
	log := r.log.With(slog.String("op", op))

	raw, err := bindBody(c)
	if err != nil {
		return badRequest(c, err)
	}

	tour, out, err := r.TourService.Create(c.Request().Context(), normalizer.Tour(raw))
	if err != nil {
		return r.fail(c, log, err)
	}

	return reply(c, http.StatusCreated, out, tour, "Tour created")
}

// UpdateTour godoc
// @Summary Обновление тура
// @Description Тур адресуется id из пути, id в теле игнорируется.
// @Tags tours
// @Accept json
// @Produce json
// @Param id path string true "ID тура"
// @Param request body models.Tour true "Тур"
// @Success 200 {object} response.Response{data=models.Tour}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/tours/{id} [put]
func (r *Routers) UpdateTour(c echo.Context) error {
	const op = "http.routers.UpdateTour"
	log := r.log.With(slog.String("op", op), slog.String("id", c.Param("id")))

	raw, err := bindBody(c)
	if err != nil {
		return badRequest(c, err)
	}

	tour, out, err := r.TourService.Update(c.Request().Context(), c.Param("id"), normalizer.Tour(raw))
	if err != nil {
		return r.fail(c, log, err)
	}

	return reply(c, http.StatusOK, out, tour, "Tour updated")
}

// DeleteTour godoc
// @Summary Удаление тура
// @Tags tours
// @Produce json
// @Param id path string true "ID тура"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /api/tours/{id} [delete]
func (r *Routers) DeleteTour(c echo.Context) error {
	const op = "http.routers.DeleteTour"
	log := r.log.With(slog.String("op", op), slog.String("id", c.Param("id")))

	out, err := r.TourService.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return r.fail(c, log, err)
	}

	return reply(c, http.StatusOK, out, nil, "Tour deleted")
}
